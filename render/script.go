package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/duskmode/duskmode"
	"github.com/duskmode/duskmode/store"
)

// ScriptMarker is the attribute guarding the blocking script against
// duplicate injection.
const ScriptMarker = "data-duskmode-init"

// ScriptOptions configures the blocking script. Zero values fall back to
// the library's standard persistence keys.
type ScriptOptions struct {
	// StorageKey is the localStorage record key.
	StorageKey string
	// ThemeCookie and SchemeCookie are the cookie pair names.
	ThemeCookie  string
	SchemeCookie string
	// KnownSchemes is the registered scheme allow-list; empty means any
	// safe scheme id is accepted.
	KnownSchemes []string
	// DefaultScheme replaces rejected or missing scheme values.
	DefaultScheme string
	// Nonce is emitted as the script's CSP nonce; generated when empty.
	Nonce string
}

func (o *ScriptOptions) fill() {
	if o.StorageKey == "" {
		o.StorageKey = store.StorageKey
	}
	if o.ThemeCookie == "" {
		o.ThemeCookie = "theme"
	}
	if o.SchemeCookie == "" {
		o.SchemeCookie = "themeScheme"
	}
	if o.DefaultScheme == "" {
		o.DefaultScheme = duskmode.DefaultScheme
	}
	if o.Nonce == "" {
		o.Nonce = uuid.NewString()
	}
}

// scriptConfig is the JSON blob embedded in the script body.
type scriptConfig struct {
	StorageKey    string   `json:"storageKey"`
	ThemeCookie   string   `json:"themeCookie"`
	SchemeCookie  string   `json:"schemeCookie"`
	Schemes       []string `json:"schemes"`
	DefaultScheme string   `json:"defaultScheme"`
}

// blockingJS reproduces the full resolution pipeline standalone: read the
// stored preference, validate it, collapse system against matchMedia, and
// mutate the root element. It runs before stylesheets apply on first
// paint, so it must not depend on anything else being loaded.
const blockingJS = `(function(){
var cfg=%s;
function cookie(name){
var parts=document.cookie.split('; ');
for(var i=0;i<parts.length;i++){var kv=parts[i].split('=');if(kv[0]===name)return decodeURIComponent(kv.slice(1).join('='));}
return null;
}
var state=null;
try{state=JSON.parse(window.localStorage.getItem(cfg.storageKey));}catch(e){}
var mode=state&&state.theme;
var scheme=state&&state.themeScheme;
if(!mode)mode=cookie(cfg.themeCookie);
if(!scheme)scheme=cookie(cfg.schemeCookie);
if(mode!=='light'&&mode!=='dark'&&mode!=='system')mode='system';
if(!scheme||!/^[A-Za-z0-9_-]+$/.test(scheme)||(cfg.schemes.length&&cfg.schemes.indexOf(scheme)===-1))scheme=cfg.defaultScheme;
var dark=mode==='dark';
if(mode==='system'){
try{dark=window.matchMedia('(prefers-color-scheme: dark)').matches;}catch(e){dark=false;}
}
var classes=['theme-'+mode,'scheme-'+scheme];
if(mode==='system')classes.push(dark?'theme-system-dark':'theme-system-light');
var root=document.documentElement;
var stale=[];
for(var i=0;i<root.classList.length;i++){
var c=root.classList[i];
if((c.indexOf('theme-')===0||c.indexOf('scheme-')===0)&&classes.indexOf(c)===-1)stale.push(c);
}
stale.forEach(function(c){root.classList.remove(c);});
classes.forEach(function(c){root.classList.add(c);});
root.setAttribute('data-theme',dark?'dark':'light');
})();`

// BlockingScript returns a complete <script> element implementing the
// anti-flash resolution, tagged with ScriptMarker and a CSP nonce.
func BlockingScript(opts ScriptOptions) string {
	opts.fill()
	cfg := scriptConfig{
		StorageKey:    opts.StorageKey,
		ThemeCookie:   opts.ThemeCookie,
		SchemeCookie:  opts.SchemeCookie,
		Schemes:       opts.KnownSchemes,
		DefaultScheme: opts.DefaultScheme,
	}
	if cfg.Schemes == nil {
		cfg.Schemes = []string{}
	}
	blob, _ := json.Marshal(cfg)
	body := fmt.Sprintf(blockingJS, blob)
	return fmt.Sprintf(`<script %s nonce="%s">%s</script>`, ScriptMarker, escape(opts.Nonce), body)
}

var headTagRe = regexp.MustCompile(`(?i)<head\b[^>]*>`)

// InjectScript inserts the blocking script into the document head, once.
// Repeated calls detect the ScriptMarker and return the document
// unchanged. The script goes immediately after the opening <head> tag so
// it runs ahead of stylesheet application; documents without a head fall
// back to just after the root tag.
func InjectScript(doc string, opts ScriptOptions) string {
	if strings.Contains(doc, ScriptMarker) {
		return doc
	}
	script := BlockingScript(opts)

	if m := headTagRe.FindStringIndex(doc); m != nil {
		return doc[:m[1]] + script + doc[m[1]:]
	}
	if m := rootTagRe.FindStringIndex(doc); m != nil {
		return doc[:m[1]] + script + doc[m[1]:]
	}
	return script + doc
}
