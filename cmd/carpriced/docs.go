package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/carpriced/docs.go -o docs`.
//
// @title           carprice API
// @version         1.0
// @description     Used-car price estimation backed by a linear regression model.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
