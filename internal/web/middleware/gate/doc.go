// Package gate provides the initialization gate middleware for the web application.
//
// While the system is uninitialized every request is answered with
// 503 Service Unavailable, except the routes needed to bring the system up:
// the setup function, the status endpoint, the health check and the metrics.
// Once the system reports initialized the result is cached, a reset never
// clears the initialization flag.
package gate
