package main

// General API documentation for swaggo. Regenerate ../../docs with `swag init -g cmd/recipebot/docs.go`.
//
// @title           recipebot API
// @version         1.0
// @description     HTTP API for the recipe chatbot: mode listing, chat turns, local recipes and transcripts.
//
// @contact.name   recipebot maintainers
// @contact.url    https://github.com/your-org/recipebot
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
