// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis session keys.
const SessionCachePrefix = "session:"

// CMSCachePrefix is the prefix used for cached CMS pages.
const CMSCachePrefix = "cms:page:"

// TokenCookieName holds the session token in the browser.
const TokenCookieName = "access_token"

// HealthCheckInterval is how often the background monitor pings dependencies.
const HealthCheckInterval = 60 * time.Second
