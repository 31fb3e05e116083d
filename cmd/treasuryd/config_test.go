package main

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arcane-treasury/engine"
)

func TestLoadConfigDefaults(t *testing.T) {
	c := qt.New(t)
	conf, err := loadConfig(nil)
	c.Assert(err, qt.IsNil)
	c.Assert(conf.Host, qt.Equals, "127.0.0.1")
	c.Assert(conf.Port, qt.Equals, 9090)
	c.Assert(conf.Engine, qt.Equals, engineElGamal)
	c.Assert(conf.EngineMaxBits, qt.Equals, uint(0))
}

func TestLoadConfigPrecedence(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "treasuryd.yaml")
	c.Assert(os.WriteFile(path, []byte("port: 7000\nlogLevel: debug\nengine: none\n"), 0o600), qt.IsNil)
	t.Setenv("TREASURY_HOST", "0.0.0.0")

	conf, err := loadConfig([]string{"--config", path, "--port", "8000"})
	c.Assert(err, qt.IsNil)
	c.Assert(conf.Port, qt.Equals, 8000)
	c.Assert(conf.Host, qt.Equals, "0.0.0.0")
	c.Assert(conf.LogLevel, qt.Equals, "debug")
	c.Assert(conf.Engine, qt.Equals, engineNone)
}

func TestLoadConfigErrors(t *testing.T) {
	c := qt.New(t)
	_, err := loadConfig([]string{"--engine", "quantum"})
	c.Assert(err, qt.ErrorMatches, `unknown engine "quantum"`)
	_, err = loadConfig([]string{"--engine", "remote"})
	c.Assert(err, qt.ErrorMatches, ".*engineURL is required.*")
	_, err = loadConfig([]string{"--config", "/nonexistent/treasuryd.yaml"})
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestEngineBuilder(t *testing.T) {
	c := qt.New(t)

	c.Assert(engineBuilder(&Config{Engine: engineNone}), qt.IsNil)

	p := engine.NewProvider(engineBuilder(&Config{Engine: engineElGamal, EngineMaxBits: 16}))
	c.Assert(p.IsFallback(), qt.IsFalse)
	c.Assert(p.Engine().Name(), qt.Equals, engine.ElGamalName)

	p = engine.NewProvider(engineBuilder(&Config{Engine: engineElGamal, EnginePrivKey: "0xnothex"}))
	c.Assert(p.IsFallback(), qt.IsTrue)

	p = engine.NewProvider(engineBuilder(&Config{Engine: engineRemote, EngineURL: "http://127.0.0.1:1"}))
	c.Assert(p.IsFallback(), qt.IsTrue)
}
