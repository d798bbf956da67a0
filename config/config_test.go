package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func reset() {
	ConfigFile, Network, FallbackProvider, IPCPath, ABIPath = "", "", "", "", ""
	FromBlock, Timeout, StrictChainID, StrictChainIDFlagSet, IPFSGateway = 0, 0, false, false, ""
	HTTPAddr, InjectedRPCURL = "", ""
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claimview.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPriority(t *testing.T) {
	reset()
	defer reset()
	t.Setenv(FallbackProviderVar, "https://env.example")
	t.Setenv(IPFSGatewayVar, "https://env-gateway.example/ipfs/")

	ConfigFile = writeConfig(t, `
provider:
  fallback_url: https://file.example
  network: gnosis
  timeout: 15s
contract:
  from_block: 100
  strict_chain_id: true
http:
  addr: ":9000"
`)
	FallbackProvider = "https://flag.example"

	if err := Load(); err != nil {
		t.Fatalf("Load: %s", err)
	}
	if FallbackProvider != "https://flag.example" {
		t.Fatalf("flag value overridden: %s", FallbackProvider)
	}
	if Network != "gnosis" || Timeout != 15*time.Second || FromBlock != 100 || !StrictChainID {
		t.Fatalf("file values not applied: %s %s %d %v", Network, Timeout, FromBlock, StrictChainID)
	}
	if IPFSGateway != "https://env-gateway.example/ipfs/" {
		t.Fatalf("env gateway not applied: %s", IPFSGateway)
	}
	if HTTPAddr != ":9000" {
		t.Fatalf("http addr = %s", HTTPAddr)
	}
}

func TestLoadEnvFallback(t *testing.T) {
	reset()
	defer reset()
	t.Setenv(FallbackProviderVar, "https://env.example")
	t.Setenv(StrictChainIDVar, "true")
	if err := Load(); err != nil {
		t.Fatalf("Load: %s", err)
	}
	if FallbackProvider != "https://env.example" || !StrictChainID {
		t.Fatalf("env not applied: %q %v", FallbackProvider, StrictChainID)
	}
	if HTTPAddr != ":8080" {
		t.Fatalf("default http addr = %q", HTTPAddr)
	}
}

func TestLoadBadTimeout(t *testing.T) {
	reset()
	defer reset()
	ConfigFile = writeConfig(t, "provider:\n  timeout: soon\n")
	if err := Load(); err == nil {
		t.Fatalf("expected invalid timeout error")
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	reset()
	defer reset()
	t.Setenv(FallbackProviderVar, "https://env.example")
	t.Setenv(StrictChainIDVar, "false")
	ConfigFile = writeConfig(t, `
provider:
  fallback_url: https://file.example
contract:
  strict_chain_id: true
`)
	if err := Load(); err != nil {
		t.Fatalf("Load: %s", err)
	}
	if FallbackProvider != "https://env.example" {
		t.Fatalf("env should win over the file, got %s", FallbackProvider)
	}
	if StrictChainID {
		t.Fatalf("env strict_chain_id=false should win over the file")
	}
}

func TestLoadExplicitStrictFlagFalse(t *testing.T) {
	reset()
	defer reset()
	t.Setenv(StrictChainIDVar, "true")
	ConfigFile = writeConfig(t, "contract:\n  strict_chain_id: true\n")
	StrictChainID, StrictChainIDFlagSet = false, true
	if err := Load(); err != nil {
		t.Fatalf("Load: %s", err)
	}
	if StrictChainID {
		t.Fatalf("--strict-chain-id=false must not be overridden")
	}
}
