package config

import (
	"github.com/shopspring/decimal"

	"github.com/pbzzardari/PlayverseZone/pkg/domain"
)

// Default returns the compiled-in catalog. Each call builds a fresh copy.
func Default() *Config {
	return &Config{
		Games: []*domain.Game{
			{
				ID:          "idle-startup-tycoon",
				Title:       "Idle Startup Tycoon",
				Description: "Build your tech empire from a humble startup to a global unicorn in this addictive idle business simulator.",
				Thumbnail:   "https://i.ibb.co/KcRmJXT2/image.png",
				Category:    domain.CategoryIdle,
				EmbedURL:    "https://html5.gamedistribution.com/c3a9f519b4ae4896b34025486dc2ed13/?gd_sdk_referrer_url=https://www.example.com/games/idle-startup",
				IsFeatured:  true,
				IsTrending:  true,
				Tags:        []string{"business", "tycoon", "clicker"},
				DateAdded:   domain.MustParseDate("2024-01-15"),
				BaseRating:  decimal.RequireFromString("4.8"),
				BasePlays:   1250430,
			},
			{
				ID:          "cinema-business",
				Title:       "Cinema Business",
				Description: "Manage popcorn stands, screen the latest blockbusters, and grow your theater chain to dominate the box office.",
				Thumbnail:   "https://i.ibb.co/KpkSJjj1/image.png",
				Category:    domain.CategoryIdle,
				EmbedURL:    "https://html5.gamedistribution.com/7cc0378d15b34bcea94a051b0aab0de9/?gd_sdk_referrer_url=https://www.example.com/games/cinema-business",
				IsTrending:  true,
				IsNew:       true,
				Tags:        []string{"management", "cinema", "money"},
				DateAdded:   domain.MustParseDate("2024-02-10"),
				BaseRating:  decimal.RequireFromString("4.5"),
				BasePlays:   843200,
			},
			{
				ID:          "fast-ball-jump",
				Title:       "Fast Ball Jump",
				Description: "Test your reflexes in this high-speed arcade jumper. Dodge obstacles and aim for the high score.",
				Thumbnail:   "https://i.ibb.co/JjThNHWB/image.png",
				Category:    domain.CategoryArcade,
				EmbedURL:    "https://html5.gamedistribution.com/7c9845af6bdb42ab8796a339a47da6a4/?gd_sdk_referrer_url=https://www.example.com/games/fast-ball-jump",
				IsFeatured:  true,
				Tags:        []string{"reflex", "bounce", "score"},
				DateAdded:   domain.MustParseDate("2023-11-05"),
				BaseRating:  decimal.RequireFromString("4.2"),
				BasePlays:   2105400,
			},
			{
				ID:          "idle-factory-domination",
				Title:       "Idle Factory Domination",
				Description: "Optimize supply chains and automate massive production lines to achieve industrial supremacy.",
				Thumbnail:   "https://i.ibb.co/TDX2xYPS/image.png",
				Category:    domain.CategoryIdle,
				EmbedURL:    "https://html5.gamedistribution.com/7d900e290aa649859e4780e429323fbc/?gd_sdk_referrer_url=https://www.example.com/games/idle-factory",
				IsTrending:  true,
				IsNew:       true,
				Tags:        []string{"factory", "automation", "strategy"},
				DateAdded:   domain.MustParseDate("2024-02-01"),
				BaseRating:  decimal.RequireFromString("4.7"),
				BasePlays:   532000,
			},
			{
				ID:          "zero-to-millionaire",
				Title:       "Zero to Millionaire",
				Description: "Make smart choices and solve puzzles to climb the social ladder from rags to riches.",
				Thumbnail:   "https://i.ibb.co/C3z0ST87/image.png",
				Category:    domain.CategoryPuzzle,
				EmbedURL:    "https://html5.gamedistribution.com/a3b05c8c36084707be9c6f58c6723c9a/?gd_sdk_referrer_url=https://www.example.com/games/zero-millionaire",
				IsFeatured:  true,
				IsNew:       true,
				Tags:        []string{"life-sim", "choices", "rich"},
				DateAdded:   domain.MustParseDate("2024-02-15"),
				BaseRating:  decimal.RequireFromString("4.6"),
				BasePlays:   3205000,
			},
			{
				ID:           "pubg-native-beta",
				Title:        "PUBG Mobile Native",
				Description:  "Experience the full Battle Royale intensity directly in your browser with zero latency technology. (Coming Soon)",
				Thumbnail:    "https://images.unsplash.com/photo-1542751371-adc38448a05e?q=80&w=400",
				Category:     domain.CategoryAction,
				IsComingSoon: true,
				Tags:         []string{"pubg", "battle-royale", "fps", "survival"},
				DateAdded:    domain.MustParseDate("2026-01-01"),
				BaseRating:   decimal.RequireFromString("5.0"),
				BasePlays:    0,
			},
			{
				ID:           "hoverboard-racers-vr",
				Title:        "Hoverboard Pro VR",
				Description:  "Cybernetic racing in a neon-lit future. Defy gravity on flying boards. (Coming Soon)",
				Thumbnail:    "https://images.unsplash.com/photo-1614728263952-84ea206f99b6?q=80&w=400",
				Category:     domain.CategoryRacing,
				IsComingSoon: true,
				Tags:         []string{"hoverboard", "racing", "cyberpunk", "vr"},
				DateAdded:    domain.MustParseDate("2025-11-20"),
				BaseRating:   decimal.RequireFromString("4.9"),
				BasePlays:    0,
			},
		},
		Achievements: []*domain.AchievementDef{
			{
				ID:          "rookie-gamer",
				Title:       "Rookie Gamer",
				Description: "Play your first 3 games",
				Icon:        "🎯",
				Requirement: domain.PlayCount{Value: 3},
			},
			{
				ID:          "idle-master",
				Title:       "Idle Master",
				Description: "Play 3 different Idle games",
				Icon:        "⏳",
				Requirement: domain.CategoryCount{Category: domain.CategoryIdle, Value: 3},
			},
			{
				ID:          "collector",
				Title:       "Curator",
				Description: "Add 3 games to your favorites",
				Icon:        "⭐",
				Requirement: domain.FavoriteCount{Value: 3},
			},
		},
		Categories: DefaultCategories(),
	}
}
