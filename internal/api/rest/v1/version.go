package v1

// BasePath is the path prefix of all version 1 routes
const BasePath = "/api/v1"
