package types

// AppName is the CLI application name
const AppName = "tcia-dl"

// Version is the application version, overridden at build time via -ldflags
var Version = "dev"

// DefaultEndpoint is the TCIA REST API endpoint to retrieve series images
const DefaultEndpoint = "https://services.cancerimagingarchive.net/services/v3/TCIA/query/getImage"
