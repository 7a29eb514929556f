// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO; heavy lifting like SQL, ebook
// parsing and word segmentation lives behind the driven ports.
package services
