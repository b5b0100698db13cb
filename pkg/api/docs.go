// Package api provides REST API handlers for HeaderIndexor
// @title HeaderIndexor API
// @version 1.0
// @description REST API for querying and pruning the fork-aware block header index maintained by HeaderIndexor
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/HeaderIndexor
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
