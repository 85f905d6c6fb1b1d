package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// APIModule mounts routes behind authentication.
type APIModule interface{ MountAPI(*gin.RouterGroup) }

// PublicModule mounts routes reachable without a token.
type PublicModule interface{ MountPublic(*gin.RouterGroup) }

// Lower priority mounts first; modules without one get 100.
type prioritizer interface{ Priority() int }

// Registry collects handler modules; a module may implement both interfaces.
type Registry struct {
	mods []any
}

func (r *Registry) Register(mods ...any) {
	r.mods = append(r.mods, mods...)
}

func (r *Registry) sorted() []any {
	mods := append([]any(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	return mods
}

func (r *Registry) MountAll(public, api *gin.RouterGroup) {
	for _, m := range r.sorted() {
		if p, ok := m.(PublicModule); ok {
			p.MountPublic(public)
		}
		if a, ok := m.(APIModule); ok {
			a.MountAPI(api)
		}
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
