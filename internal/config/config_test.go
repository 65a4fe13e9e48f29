package config_test

import (
	"testing"

	"github.com/okian/podium/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Profile, convey.ShouldEqual, config.ProfileProduction)
			convey.So(cfg.MaxWindow, convey.ShouldEqual, 100)
			convey.So(cfg.Development(), convey.ShouldBeFalse)
		})
	})
}
