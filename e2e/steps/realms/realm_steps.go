package realms

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	POST(path string, body any, headers map[string]string) error
	GetAdminToken() string
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers realm asset and permission steps.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &realmSteps{tc: tc}

	ctx.Step(`^the realm "([^"]*)" is loaded$`, steps.realmIsLoaded)
	ctx.Step(`^I request the assets of realm "([^"]*)"$`, steps.requestAssets)
	ctx.Step(`^I request the "([^"]*)" assets of realm "([^"]*)"$`, steps.requestAssetsOfType)
	ctx.Step(`^every asset account should have type "([^"]*)"$`, steps.everyAccountHasType)
	ctx.Step(`^asset accounts should be ordered mints, programs, then treasuries$`, steps.accountsAreOrdered)
	ctx.Step(`^I request the permissions of wallet "([^"]*)" in realm "([^"]*)"$`, steps.requestPermissions)
	ctx.Step(`^the instruction "([^"]*)" should be offered$`, steps.instructionOffered)
	ctx.Step(`^the instruction "([^"]*)" should not be offered$`, steps.instructionNotOffered)
}

type realmSteps struct {
	tc TestContext
}

type assetsBody struct {
	AssetAccounts []struct {
		Type   string `json:"type"`
		Pubkey string `json:"pubkey"`
	} `json:"asset_accounts"`
}

type permissionsBody struct {
	Instructions []struct {
		ID string `json:"id"`
	} `json:"instructions"`
}

func (s *realmSteps) realmIsLoaded(ctx context.Context, realm string) error {
	err := s.tc.POST("/v1/realms/"+realm+"/load", nil, map[string]string{"X-Admin-Token": s.tc.GetAdminToken()})
	if err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("loading realm %s returned %d: %s", realm, status, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *realmSteps) requestAssets(ctx context.Context, realm string) error {
	return s.tc.GET("/v1/realms/"+realm+"/assets", nil)
}

func (s *realmSteps) requestAssetsOfType(ctx context.Context, assetType, realm string) error {
	return s.tc.GET("/v1/realms/"+realm+"/assets?type="+assetType, nil)
}

func (s *realmSteps) assets() (assetsBody, error) {
	var body assetsBody
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return body, fmt.Errorf("decode assets: %w", err)
	}
	return body, nil
}

func (s *realmSteps) everyAccountHasType(ctx context.Context, want string) error {
	body, err := s.assets()
	if err != nil {
		return err
	}
	for _, a := range body.AssetAccounts {
		if a.Type != want {
			return fmt.Errorf("account %s has type %s, want %s", a.Pubkey, a.Type, want)
		}
	}
	return nil
}

func (s *realmSteps) accountsAreOrdered(ctx context.Context) error {
	body, err := s.assets()
	if err != nil {
		return err
	}
	rank := map[string]int{"mint": 0, "program": 1, "token": 2, "nft": 2, "sol": 2}
	last := 0
	for _, a := range body.AssetAccounts {
		r, ok := rank[a.Type]
		if !ok {
			return fmt.Errorf("account %s has unknown type %s", a.Pubkey, a.Type)
		}
		if r < last {
			return fmt.Errorf("account %s (%s) is out of order", a.Pubkey, a.Type)
		}
		last = r
	}
	return nil
}

func (s *realmSteps) requestPermissions(ctx context.Context, wallet, realm string) error {
	return s.tc.GET("/v1/realms/"+realm+"/permissions?wallet="+wallet, nil)
}

func (s *realmSteps) offered(id string) (bool, error) {
	var body permissionsBody
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &body); err != nil {
		return false, fmt.Errorf("decode permissions: %w", err)
	}
	for _, ins := range body.Instructions {
		if ins.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *realmSteps) instructionOffered(ctx context.Context, id string) error {
	ok, err := s.offered(id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("instruction %s not offered: %s", id, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *realmSteps) instructionNotOffered(ctx context.Context, id string) error {
	ok, err := s.offered(id)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("instruction %s unexpectedly offered", id)
	}
	return nil
}
