// Package cachekey builds the keys under which tenant-scoped list views are cached.
//
// A key has the shape
//
//	<namespace>:businessId=<tenant>[:<name>=<value>]...
//
// The tenant segment always directly follows the namespace, and the remaining filters are
// sorted by name, so a tenant's entries can be matched with TenantPatterns no matter
// which filters were used. Names and values are query-escaped, which keeps the glob
// metacharacters and the separator out of every segment.
package cachekey

import (
	"net/url"
	"sort"
	"strings"
)

// Namespace identifies one kind of cached list. Every namespace sharing the cache
// backend must be declared here.
type Namespace string

const (
	ClientList   Namespace = "clients:list"
	ClientRecord Namespace = "clients:record"
)

var registered = map[Namespace]struct{}{
	ClientList:   {},
	ClientRecord: {},
}

// Valid reports whether ns is a registered namespace.
func (ns Namespace) Valid() bool {
	_, ok := registered[ns]
	return ok
}

func (ns Namespace) String() string { return string(ns) }

const (
	// Separator joins key segments.
	Separator = ":"
	// TenantParam is the name of the tenant discriminator segment.
	TenantParam = "businessId"
)

// Build returns the cache key for a list query of tenantID in ns. Empty values in params
// are skipped, so an absent filter and an empty one produce the same key. A TenantParam
// entry in params is ignored.
func Build(ns Namespace, tenantID string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == "" || name == TenantParam {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(tenantPrefix(ns, tenantID))
	for _, name := range names {
		b.WriteString(Separator)
		b.WriteString(url.QueryEscape(name))
		b.WriteString("=")
		b.WriteString(url.QueryEscape(params[name]))
	}
	return b.String()
}

// TenantPatterns returns the glob patterns covering every key Build can produce for
// tenantID in ns: the unfiltered key itself and all of its filtered variants.
func TenantPatterns(ns Namespace, tenantID string) []string {
	prefix := tenantPrefix(ns, tenantID)
	return []string{prefix, prefix + Separator + "*"}
}

// Record returns the key of a single entity of ns identified by id.
func Record(ns Namespace, id string) string {
	return string(ns) + Separator + "id=" + url.QueryEscape(id)
}

func tenantPrefix(ns Namespace, tenantID string) string {
	return string(ns) + Separator + TenantParam + "=" + url.QueryEscape(tenantID)
}
