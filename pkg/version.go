package jubiland

// Version is the current release of the jubiland datastore and its tools.
const Version = "0.1.0"
