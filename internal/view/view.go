// Package view renders the console's HTML templates. Pages are parsed
// together with the shared layout and cached; resolvers injected at
// bootstrap let templates ask about the current employee's permissions
// without importing the policy package.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"clientdesk/internal/models"
	"clientdesk/internal/services"
)

var (
	baseDir string
	once    sync.Once

	// dev reparses templates on every request instead of caching.
	// Defaults on, like config.AppConfig; main sets the real value.
	dev = true

	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}

	// Resolvers set by the host app so templates can gate controls.
	canResolver      func(r *http.Request, resource, action string) bool
	isAdminResolver  func(r *http.Request) bool
	roleNameResolver func(r *http.Request) string
)

// SetDev selects between reparsing templates on every request and the
// parsed-template cache. Wired to config.AppConfig.Dev at bootstrap.
func SetDev(v bool) { dev = v }

// SetCanResolver installs the callback behind the template "can" func.
func SetCanResolver(f func(*http.Request, string, string) bool) {
	if f != nil {
		canResolver = f
	}
}

// SetIsAdminResolver installs the callback behind "isAdmin".
func SetIsAdminResolver(f func(*http.Request) bool) {
	if f != nil {
		isAdminResolver = f
	}
}

// SetRoleNameResolver installs the callback behind "roleName", used by
// the navigation shell's role badge.
func SetRoleNameResolver(f func(*http.Request) string) {
	if f != nil {
		roleNameResolver = f
	}
}

func detectBase() {
	candidates := []string{"templates", "../templates", "../../templates"}
	for _, c := range candidates {
		if fi, err := os.Stat(filepath.Clean(c)); err == nil && fi.IsDir() {
			baseDir = filepath.Clean(c)
			return
		}
	}
	baseDir = "templates"
}

// Funcs returns the template FuncMap for one request.
func Funcs(r *http.Request) template.FuncMap {
	return template.FuncMap{
		// can checks a role permission (resource, action) -> bool.
		"can": func(resource, action string) bool {
			if canResolver == nil {
				return false
			}
			return canResolver(r, resource, action)
		},
		"isAdmin": func() bool {
			if isAdminResolver == nil {
				return false
			}
			return isAdminResolver(r)
		},
		"roleName": func() string {
			if roleNameResolver == nil {
				return ""
			}
			return roleNameResolver(r)
		},
		"fmtDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"fmtSize": formatSize,
		"year":    func() int { return time.Now().Year() },
		"documentMail": func(to string, client models.Client, doc models.Document) string {
			return services.DocumentMail(to, client, doc)
		},
		"quotationMail": func(to string, client models.Client, q models.Quotation) string {
			return services.QuotationMail(to, client, q)
		},
		// dict builds a map for sub-template parameters.
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

func load(r *http.Request, name string) (*template.Template, error) {
	if !dev {
		tplCache.RLock()
		tpl, ok := tplCache.m[name]
		tplCache.RUnlock()
		if ok {
			// Clone per request: "can" and friends close over the request.
			clone, err := tpl.Clone()
			if err != nil {
				return nil, err
			}
			return clone.Funcs(Funcs(r)), nil
		}
	}

	files := []string{
		filepath.Join(baseDir, "layout.html"),
		filepath.Join(baseDir, filepath.FromSlash(name)),
	}
	tpl, err := template.New("layout.html").Funcs(Funcs(r)).ParseFiles(files...)
	if err != nil {
		return nil, err
	}
	if !dev {
		tplCache.Lock()
		tplCache.m[name] = tpl
		tplCache.Unlock()
		// The cached original must stay pristine: Clone fails once a
		// template has executed, so the caller gets a clone here too.
		clone, err := tpl.Clone()
		if err != nil {
			return nil, err
		}
		return clone.Funcs(Funcs(r)), nil
	}
	return tpl, nil
}

// Render writes the named page wrapped in the layout. The page is
// buffered so a template error can still produce a clean 500.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) error {
	once.Do(detectBase)

	tpl, err := load(r, name)
	if err != nil {
		return fmt.Errorf("load template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render template %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
