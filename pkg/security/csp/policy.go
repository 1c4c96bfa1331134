// Package csp builds Content-Security-Policy header values.
package csp

import (
	"strings"
)

// directiveOrder fixes the output order so built policies are stable.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"report-uri",
}

// CSPBuilder provides a fluent interface for constructing Content-Security-Policy headers.
//
// Example Usage:
//
//	policy := NewCSPBuilder().
//	    DefaultSrc("'self'").
//	    ImgSrc("'self'", "data:").
//	    Build()
//	// Returns: "default-src 'self'; img-src 'self' data:"
//
// CSPBuilder is not safe for concurrent modification; build once and share the string.
type CSPBuilder struct {
	directives map[string][]string
	reportOnly bool
}

// NewCSPBuilder creates a new CSPBuilder with no directives.
func NewCSPBuilder() *CSPBuilder {
	return &CSPBuilder{directives: make(map[string][]string)}
}

func (b *CSPBuilder) set(directive string, sources []string) *CSPBuilder {
	b.directives[directive] = sources
	return b
}

// DefaultSrc sets the fallback for every fetch directive that is not set.
func (b *CSPBuilder) DefaultSrc(sources ...string) *CSPBuilder { return b.set("default-src", sources) }
func (b *CSPBuilder) ScriptSrc(sources ...string) *CSPBuilder  { return b.set("script-src", sources) }
func (b *CSPBuilder) StyleSrc(sources ...string) *CSPBuilder   { return b.set("style-src", sources) }

// ImgSrc controls where images may come from.
func (b *CSPBuilder) ImgSrc(sources ...string) *CSPBuilder     { return b.set("img-src", sources) }
func (b *CSPBuilder) FontSrc(sources ...string) *CSPBuilder    { return b.set("font-src", sources) }
func (b *CSPBuilder) ConnectSrc(sources ...string) *CSPBuilder { return b.set("connect-src", sources) }

// FrameAncestors restricts who may embed the page. 'none' replaces X-Frame-Options: DENY.
func (b *CSPBuilder) FrameAncestors(sources ...string) *CSPBuilder {
	return b.set("frame-ancestors", sources)
}

// FormAction restricts the targets of form submissions.
func (b *CSPBuilder) FormAction(sources ...string) *CSPBuilder { return b.set("form-action", sources) }
func (b *CSPBuilder) BaseUri(sources ...string) *CSPBuilder    { return b.set("base-uri", sources) }
func (b *CSPBuilder) ObjectSrc(sources ...string) *CSPBuilder  { return b.set("object-src", sources) }

// ReportUri sets the endpoint browsers post violation reports to.
func (b *CSPBuilder) ReportUri(uri string) *CSPBuilder {
	return b.set("report-uri", []string{uri})
}

// ReportOnly switches the policy to report violations without enforcing them.
func (b *CSPBuilder) ReportOnly(enabled bool) *CSPBuilder {
	b.reportOnly = enabled
	return b
}

// Build returns the header value. Directives without sources are omitted.
func (b *CSPBuilder) Build() string {
	var parts []string
	for _, directive := range directiveOrder {
		if sources := b.directives[directive]; len(sources) > 0 {
			parts = append(parts, directive+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// HeaderName returns the enforcing or the report-only header name.
func (b *CSPBuilder) HeaderName() string {
	if b.reportOnly {
		return "Content-Security-Policy-Report-Only"
	}
	return "Content-Security-Policy"
}

// StrictPolicy blocks every fetch. It suits JSON and operational endpoints.
func StrictPolicy() *CSPBuilder {
	return NewCSPBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseUri("'none'")
}
