package ktl

// Version is the current ktl release.
const Version = "0.1.0"
