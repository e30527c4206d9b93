package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/okian/phomva/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.Workers, convey.ShouldEqual, runtime.NumCPU()*2)
				convey.So(cfg.MVA.Labels, convey.ShouldResemble, config.DefaultLabels)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PHOMVA_ADDR", ":8080")
			_ = os.Setenv("PHOMVA_WORKERS", "16")
			_ = os.Setenv("PHOMVA_LOG_LEVEL", "debug")
			_ = os.Setenv("PHOMVA_MVA__USEVALUEMAPS", "true")
			_ = os.Setenv("PHOMVA_MVA__WEIGHTFILENAMES", "eb1.yaml, eb2.yaml,ee.yaml")
			_ = os.Setenv("PHOMVA_MVA__RHO", "fixedGridRhoAll")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.Workers, convey.ShouldEqual, 16)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.MVA.UseValueMaps, convey.ShouldBeTrue)
				convey.So(cfg.MVA.WeightFileNames, convey.ShouldResemble, []string{"eb1.yaml", "eb2.yaml", "ee.yaml"})
				convey.So(cfg.MVA.Rho, convey.ShouldEqual, "fixedGridRhoAll")
				convey.So(cfg.MVA.PhoChargedIsolation, convey.ShouldEqual, config.DefaultLabels.PhoChargedIsolation)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
workers: 24
mva:
  mvaTag: Run2Spring15NonTrig50nsV1
  useValueMaps: true
  weightFileNames:
    - weights/EB1.yaml
    - weights/EB2.yaml
    - weights/EE.yaml
  full5x5E5x5Map: "myProducer:e5x5"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PHOMVA_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Workers, convey.ShouldEqual, 24)
				convey.So(cfg.MVA.MVATag, convey.ShouldEqual, "Run2Spring15NonTrig50nsV1")
				convey.So(cfg.MVA.UseValueMaps, convey.ShouldBeTrue)
				convey.So(len(cfg.MVA.WeightFileNames), convey.ShouldEqual, 3)
				convey.So(cfg.MVA.Full5x5E5x5Map, convey.ShouldEqual, "myProducer:e5x5")
				convey.So(cfg.MVA.Full5x5E1x3Map, convey.ShouldEqual, config.DefaultLabels.Full5x5E1x3Map)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
workers: 24
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PHOMVA_CONFIG", tmpFile)
			_ = os.Setenv("PHOMVA_WORKERS", "32")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.Workers, convey.ShouldEqual, 32)
			})
		})

		convey.Convey("When file and environment both set mixed-case keys", func() {
			yamlContent := `
mva:
  mvaTag: FromFile
  useValueMaps: true
  sampleType: 2015
  weightFileNames: [f1.yaml, f2.yaml, f3.yaml]
  full5x5E5x5Map: "fileProducer:e5x5"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PHOMVA_CONFIG", tmpFile)
			_ = os.Setenv("PHOMVA_MVA__MVATAG", "FromEnv")
			_ = os.Setenv("PHOMVA_MVA__USEVALUEMAPS", "false")
			_ = os.Setenv("PHOMVA_MVA__SAMPLETYPE", "2016")
			_ = os.Setenv("PHOMVA_MVA__WEIGHTFILENAMES", "e1.yaml,e2.yaml,e3.yaml")
			_ = os.Setenv("PHOMVA_MVA__FULL5X5E5X5MAP", "envProducer:e5x5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MVA.MVATag, convey.ShouldEqual, "FromEnv")
				convey.So(cfg.MVA.UseValueMaps, convey.ShouldBeFalse)
				convey.So(cfg.MVA.SampleType, convey.ShouldEqual, 2016)
				convey.So(cfg.MVA.WeightFileNames, convey.ShouldResemble, []string{"e1.yaml", "e2.yaml", "e3.yaml"})
				convey.So(cfg.MVA.Full5x5E5x5Map, convey.ShouldEqual, "envProducer:e5x5")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("PHOMVA_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a value cannot be converted", func() {
			_ = os.Setenv("PHOMVA_WORKERS", "not_a_number")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}

func TestConfigLoaderValidation(t *testing.T) {
	convey.Convey("Given invalid settings", t, func() {
		ctx := context.Background()

		cases := map[string]string{
			"PHOMVA_ADDR":     "",
			"PHOMVA_WORKERS":  "0",
			"PHOMVA_MVA__RHO": "",
		}
		for key, value := range cases {
			_ = os.Setenv(key, value)
			_, err := config.Load(ctx)
			clearConfigEnvVars()

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		}

		convey.Convey("When workers is negative", func() {
			_ = os.Setenv("PHOMVA_WORKERS", "-4")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"PHOMVA_CONFIG",
		"PHOMVA_ADDR",
		"PHOMVA_WORKERS",
		"PHOMVA_LOG_LEVEL",
		"PHOMVA_MVA__USEVALUEMAPS",
		"PHOMVA_MVA__WEIGHTFILENAMES",
		"PHOMVA_MVA__RHO",
		"PHOMVA_MVA__MVATAG",
		"PHOMVA_MVA__SAMPLETYPE",
		"PHOMVA_MVA__FULL5X5E5X5MAP",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "phomva-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
