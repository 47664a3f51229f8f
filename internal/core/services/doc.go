// Package services implements the driving port interfaces.
// Services hold the application logic and orchestrate calls to the driven
// ports. They never log store failures; the store already has.
package services
