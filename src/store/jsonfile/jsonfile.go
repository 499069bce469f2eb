package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/hanseol/rolewarden/src/store"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// guildSettings is the per-guild record inside the settings document. An
// empty record is still kept in the document once the guild has been touched.
type guildSettings struct {
	DefaultRoleID string `json:"defaultRoleId,omitempty"`
}

// document is the whole persisted settings file:
// {"guilds": {"<guildID>": {"defaultRoleId": "<roleID>"}}}
type document struct {
	Guilds map[string]*guildSettings `json:"guilds"`
}

type db struct {
	path string
	doc  document
	sync.RWMutex
}

// Load reads the settings document at path. A missing or malformed file
// yields an empty store; Load never fails.
func Load(path string) store.Store {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("settings directory unavailable, saves will fail")
		}
	}

	d := &db{path: path}
	dat, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(dat, &d.doc); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("settings file malformed, starting empty")
			d.doc = document{}
		}
	case !os.IsNotExist(err):
		log.Warn().Err(err).Str("path", path).Msg("settings file unreadable, starting empty")
	}
	if d.doc.Guilds == nil {
		d.doc.Guilds = make(map[string]*guildSettings)
	}
	return d
}

// guild returns the record for guildID, inserting an empty one if absent.
// The write lock must be held.
func (d *db) guild(guildID string) *guildSettings {
	g, ok := d.doc.Guilds[guildID]
	if !ok {
		g = &guildSettings{}
		d.doc.Guilds[guildID] = g
	}
	return g
}

// save rewrites the whole document via a temp file and rename. The write
// lock must be held.
func (d *db) save() error {
	dat, err := json.MarshalIndent(&d.doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding settings")
	}
	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, dat, 0o644); err != nil {
		return errors.Wrap(err, "writing settings")
	}
	return errors.Wrap(os.Rename(tmp, d.path), "writing settings")
}

func (d *db) DefaultRole(guildID string) string {
	d.RLock()
	defer d.RUnlock()

	g, ok := d.doc.Guilds[guildID]
	if !ok {
		return ""
	}
	return g.DefaultRoleID
}

func (d *db) SetDefaultRole(guildID, roleID string) error {
	d.Lock()
	defer d.Unlock()

	d.guild(guildID).DefaultRoleID = roleID
	return d.save()
}

func (d *db) ClearDefaultRole(guildID string) error {
	d.Lock()
	defer d.Unlock()

	d.guild(guildID).DefaultRoleID = ""
	return d.save()
}
