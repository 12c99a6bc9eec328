package version

// Version is the primegen release version.
const Version = "0.1.0"
