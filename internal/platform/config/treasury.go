package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	id "govassets/pkg/domain"
	platformstrings "govassets/pkg/platform/strings"
)

// treasuryFile is the YAML layout of GOVASSETS_TREASURY_FILE.
type treasuryFile struct {
	HiddenGovernances     []string          `yaml:"hidden_governances"`
	HiddenTreasuries      []string          `yaml:"hidden_treasuries"`
	NFTTreasuryMint       string            `yaml:"nft_treasury_mint"`
	NativeSolTreasuryMint string            `yaml:"native_sol_treasury_mint"`
	VSRPlugins            []string          `yaml:"vsr_plugins"`
	RealmSymbols          map[string]string `yaml:"realm_symbols"`
}

// Treasury holds the parsed treasury lists. Nil mints and an empty plugin
// list mean the built-in defaults apply.
type Treasury struct {
	HiddenGovernances     id.PublicKeySet
	HiddenTreasuries      id.PublicKeySet
	NFTTreasuryMint       *id.PublicKey
	NativeSolTreasuryMint *id.PublicKey
	VSRPlugins            id.PublicKeySet
	RealmSymbols          map[id.PublicKey]string
}

// LoadTreasury reads path. An empty path yields empty lists.
func LoadTreasury(path string) (Treasury, error) {
	if path == "" {
		return parseTreasury(treasuryFile{})
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Treasury{}, fmt.Errorf("read treasury file: %w", err)
	}
	return ParseTreasury(raw)
}

// ParseTreasury decodes a treasury YAML document.
func ParseTreasury(raw []byte) (Treasury, error) {
	var f treasuryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Treasury{}, fmt.Errorf("decode treasury file: %w", err)
	}
	return parseTreasury(f)
}

func parseTreasury(f treasuryFile) (Treasury, error) {
	t := Treasury{RealmSymbols: make(map[id.PublicKey]string, len(f.RealmSymbols))}
	var err error
	if t.HiddenGovernances, err = keySet("hidden_governances", f.HiddenGovernances); err != nil {
		return Treasury{}, err
	}
	if t.HiddenTreasuries, err = keySet("hidden_treasuries", f.HiddenTreasuries); err != nil {
		return Treasury{}, err
	}
	if t.VSRPlugins, err = keySet("vsr_plugins", f.VSRPlugins); err != nil {
		return Treasury{}, err
	}
	if t.NFTTreasuryMint, err = optionalKey("nft_treasury_mint", f.NFTTreasuryMint); err != nil {
		return Treasury{}, err
	}
	if t.NativeSolTreasuryMint, err = optionalKey("native_sol_treasury_mint", f.NativeSolTreasuryMint); err != nil {
		return Treasury{}, err
	}
	for raw, symbol := range f.RealmSymbols {
		pk, err := id.ParsePublicKey(raw)
		if err != nil {
			return Treasury{}, fmt.Errorf("realm_symbols: %s: %w", raw, err)
		}
		t.RealmSymbols[pk] = symbol
	}
	return t, nil
}

func keySet(field string, values []string) (id.PublicKeySet, error) {
	set, err := id.NewPublicKeySet(platformstrings.DedupeAndTrim(values)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return set, nil
}

func optionalKey(field, raw string) (*id.PublicKey, error) {
	if raw == "" {
		return nil, nil
	}
	pk, err := id.ParsePublicKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &pk, nil
}
