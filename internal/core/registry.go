package core

import (
	"fmt"
	"sort"
	"sync"
)

// Profile is a named, ready-to-use set of reconciliation settings for one
// pair of export layouts.
type Profile struct {
	Key         string   `json:"key"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Settings    Settings `json:"settings"`
}

var (
	profiles   = make(map[string]Profile)
	profilesMu sync.RWMutex
)

// RegisterProfile adds a profile to the registry.
// Panics if a profile with the same key is already registered.
func RegisterProfile(p Profile) {
	profilesMu.Lock()
	defer profilesMu.Unlock()

	if _, exists := profiles[p.Key]; exists {
		panic(fmt.Sprintf("profile already registered: %s", p.Key))
	}

	p.Settings = p.Settings.withDefaults()
	profiles[p.Key] = p
}

// GetProfile returns a profile by key.
// Returns false if not found.
func GetProfile(key string) (Profile, bool) {
	profilesMu.RLock()
	defer profilesMu.RUnlock()

	p, ok := profiles[key]
	return p, ok
}

// Profiles returns all registered profiles sorted by key.
func Profiles() []Profile {
	profilesMu.RLock()
	defer profilesMu.RUnlock()

	result := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// ProfileCount returns the number of registered profiles.
func ProfileCount() int {
	profilesMu.RLock()
	defer profilesMu.RUnlock()
	return len(profiles)
}

// ClearProfiles removes all registered profiles.
// Primarily useful for testing.
func ClearProfiles() {
	profilesMu.Lock()
	defer profilesMu.Unlock()
	profiles = make(map[string]Profile)
}
