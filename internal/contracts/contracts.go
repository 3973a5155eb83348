// Package contracts embeds the TalentLayer contract ABIs shipped with the client.
package contracts

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abi/*.json
var abiFiles embed.FS

const (
	TalentLayerID         = "TalentLayerID"
	TalentLayerService    = "TalentLayerService"
	TalentLayerReview     = "TalentLayerReview"
	TalentLayerPlatformID = "TalentLayerPlatformID"
)

// Names lists the embedded ABI names.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(abiFiles, "abi")
	if err != nil {
		return nil, fmt.Errorf("contracts: list abi: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".json"))
	}
	return out, nil
}

// ParseABI loads and parses the embedded ABI with the given name.
func ParseABI(name string) (abi.ABI, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".json")
	if name == "" {
		return abi.ABI{}, fmt.Errorf("contracts: empty abi name")
	}

	f, err := abiFiles.Open(path.Join("abi", name+".json"))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("contracts: open abi %q: %w", name, err)
	}
	defer f.Close()

	parsed, err := abi.JSON(f)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("contracts: parse abi %q: %w", name, err)
	}
	return parsed, nil
}
