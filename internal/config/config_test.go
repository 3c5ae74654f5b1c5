package config_test

import (
	"testing"

	"github.com/okian/gigfeed/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":3000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.APIBaseURL, convey.ShouldEqual, "https://discord.com/api/v10")
			convey.So(cfg.CDNBaseURL, convey.ShouldEqual, "https://cdn.discordapp.com")
			convey.So(cfg.PlatformBaseURL, convey.ShouldEqual, "https://discord.com")
			convey.So(cfg.CacheTTLSeconds, convey.ShouldEqual, 15)
			convey.So(cfg.FetchTimeoutSeconds, convey.ShouldEqual, 15)
			convey.So(cfg.RadioDomains, convey.ShouldHaveLength, 2)
		})

		convey.Convey("And with no credentials it should be in demo mode", func() {
			convey.So(cfg.DemoMode(), convey.ShouldBeTrue)
		})

		convey.Convey("And with both credentials set demo mode is off", func() {
			cfg.GuildID = "g"
			cfg.BotToken = "t"
			convey.So(cfg.DemoMode(), convey.ShouldBeFalse)
		})

		convey.Convey("And a token without a guild id still means demo mode", func() {
			cfg.BotToken = "t"
			convey.So(cfg.DemoMode(), convey.ShouldBeTrue)
		})
	})
}
