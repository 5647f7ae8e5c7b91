// Package media は保存済み画像パスを絶対URLにする。
package media

import "strings"

type URLBuilder struct {
	prefix string // /media/
}

func NewURLBuilder(mediaURL string) URLBuilder {
	if mediaURL == "" {
		mediaURL = "/media/"
	}
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}
	return URLBuilder{prefix: mediaURL}
}

// Resolve は画像が無ければnil。
// origin（scheme://host）が無いときはpathだけ返す
func (b URLBuilder) Resolve(origin string, stored *string) *string {
	if stored == nil || strings.TrimSpace(*stored) == "" {
		return nil
	}
	p := *stored
	// 既に絶対URL
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return &p
	}

	u := p
	if !strings.HasPrefix(p, b.prefix) {
		u = b.prefix + strings.TrimPrefix(p, "/")
	}
	if strings.HasPrefix(b.prefix, "http://") || strings.HasPrefix(b.prefix, "https://") {
		return &u
	}
	u = strings.TrimSuffix(origin, "/") + u
	return &u
}
