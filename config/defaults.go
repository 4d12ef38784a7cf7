package config

import (
	"github.com/spf13/viper"

	"github.com/lixenwraith/cursorfx/constants"
)

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "cursorfx")
	v.SetDefault("logger.log_file", "logs/cursorfx.log")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", false)

	// -- Render --
	v.SetDefault("render.fps", constants.DefaultFPS)
	v.SetDefault("render.cell_width_px", constants.DefaultCellWidthPx)
	v.SetDefault("render.cell_height_px", constants.DefaultCellHeightPx)
	v.SetDefault("render.color_mode", "auto")
	v.SetDefault("render.background", "#1a1b26")

	// -- Field --
	v.SetDefault("field.enabled", true)
	v.SetDefault("field.area_per_particle", constants.ParticleAreaPerParticle)
	v.SetDefault("field.pointer_radius", constants.PointerRadius)
	v.SetDefault("field.push_strength", constants.PushStrength)
	v.SetDefault("field.link_divisor", constants.LinkDivisor)
	v.SetDefault("field.link_fade_distance_sq", constants.LinkFadeDistanceSq)
	v.SetDefault("field.link_opacity_scale", constants.LinkOpacityScale)
	v.SetDefault("field.link_color", "#c8dcff")
	v.SetDefault("field.clamp_link_alpha", false)

	// -- Trail --
	v.SetDefault("trail.dot_count", constants.TrailDotCount)
	v.SetDefault("trail.base_size", constants.TrailBaseSize)
	v.SetDefault("trail.size_step", constants.TrailSizeStep)
	v.SetDefault("trail.min_size", constants.TrailMinSize)
	v.SetDefault("trail.head_speed", constants.TrailHeadSpeed)
	v.SetDefault("trail.speed_step", constants.TrailSpeedStep)
	v.SetDefault("trail.base_opacity", constants.TrailBaseOpacity)
	v.SetDefault("trail.opacity_step", constants.TrailOpacityStep)
	v.SetDefault("trail.min_opacity", constants.TrailMinOpacity)
	v.SetDefault("trail.history_size", constants.TrailHistorySize)

	// -- Movement --
	v.SetDefault("movement.idle_timeout", constants.IdleTimeout.String())
	v.SetDefault("movement.circle_angle_step", constants.CircleAngleStep)
	v.SetDefault("movement.circle_radius_ratio", constants.CircleRadiusRatio)

	// -- Audio --
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.master_volume", 0.5)
	v.SetDefault("audio.burst_volume", 0.6)

	// -- UI --
	v.SetDefault("ui.cursor_enabled", true)
	v.SetDefault("ui.show_hud", false)
}
