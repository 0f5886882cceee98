package version

// Version is the current strata release version.
// Updated as part of the release process.
var Version = "0.4.1"
