package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           genbridge API
// @version         1.0
// @description     HTTP API for bridging host applications onto a local constrained-generation runtime.
//
// @contact.name   genbridge maintainers
// @contact.url    https://github.com/your-org/genbridge
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
