// Package schema provides versioning utilities for SceneConfig.
package schema

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// ComputeVersion computes a deterministic version for a SceneConfig.
// Priority: user-provided scene.Version, else SHA256(scene JSON)[:8] + timestamp.
func ComputeVersion(scene *SceneConfig) string {
	if scene.Version != "" {
		return scene.Version
	}

	data, err := json.Marshal(scene)
	if err != nil {
		// Fallback (should not happen for valid scenes)
		return fmt.Sprintf("invalid-%d", time.Now().Unix())
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x-%s", hash[:8], time.Now().UTC().Format("20060102T150405Z"))
}
