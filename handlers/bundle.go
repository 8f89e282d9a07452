// File: handlers/bundle.go
package handlers

import (
	"cibnlibrary/services/session"
)

// HandlerBundle groups the endpoint handlers and what the routes need to guard them.
type HandlerBundle struct {
	Sessions   session.Provider
	AdminToken string

	Library *LibraryHandler
	Auth    *AuthHandler
	Pages   *PageHandler
	Debug   *DebugHandler
	CMS     *CMSHandler
	Config  *ConfigHandler
}
