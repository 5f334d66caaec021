package main

// General API documentation for swaggo. Run the swagger generator to refresh docs.
//
// @title           plainspeak API
// @version         1.0
// @description     HTTP API for corporate-speak translation, speech capture and read-back.
//
// @contact.name   plainspeak maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
