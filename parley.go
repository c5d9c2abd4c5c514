package parley

// Version is the release of the parley module and its tools.
const Version = "0.1.0"
