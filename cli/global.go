package main

// <constants>
const configJSONErrMsg = `could not serialize config JSON: %s`
const resultJSONErrMsg = `could not serialize result JSON: %s`

const envPrefix = `DUPIMAGES`

// exit codes
const (
	exitOK           = 0
	exitInvalidInput = 1
	exitInvalidConf  = 2
	exitSerializing  = 6
	exitUnsupported  = 100
	exitInterrupted  = 130
)

// </constants>

// <global-variables>
//   <subset purpose="used by ‘cobra’">
var argConfigOutput bool
var argJSONOutput bool
var argConfigFile string
var argLogLevel string

//   </subset>

//   <subset purpose="used for passing values between ‘cobra’ methods">
var w Output
var log Output
var exitCode int
var cmdError error

//   </subset>
// </global-variables>
