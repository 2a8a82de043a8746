package display

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultProfile is used when no profile is named.
const DefaultProfile = "qvga"

// Available display profiles
var profiles = map[string]Profile{
	"qvga": {
		Name: "QVGA handset",
		Geometry: Geometry{
			ScreenWidth:    240,
			ScreenHeight:   320,
			DPI:            120,
			TitleBarHeight: 20,
			SoftKeyHeight:  24,
			ThumbnailSize:  56,
		},
	},
	"vga": {
		Name: "VGA handset",
		Geometry: Geometry{
			ScreenWidth:    480,
			ScreenHeight:   640,
			DPI:            240,
			TitleBarHeight: 40,
			SoftKeyHeight:  48,
			ThumbnailSize:  112,
		},
	},
	"wvga": {
		Name: "WVGA handset",
		Geometry: Geometry{
			ScreenWidth:    480,
			ScreenHeight:   800,
			DPI:            240,
			TitleBarHeight: 40,
			SoftKeyHeight:  48,
			ThumbnailSize:  112,
		},
	},
	"hd": {
		Name: "HD phone",
		Geometry: Geometry{
			ScreenWidth:    720,
			ScreenHeight:   1280,
			DPI:            320,
			TitleBarHeight: 56,
			SoftKeyHeight:  96,
			ThumbnailSize:  160,
		},
	},
	"fhd": {
		Name: "Full HD phone",
		Geometry: Geometry{
			ScreenWidth:    1080,
			ScreenHeight:   1920,
			DPI:            480,
			TitleBarHeight: 84,
			SoftKeyHeight:  144,
			ThumbnailSize:  240,
		},
	},
}

// GetProfile returns a display profile by name
func GetProfile(name string) (Profile, error) {
	normalizedName := strings.ToLower(strings.TrimSpace(name))
	if normalizedName == "" {
		normalizedName = DefaultProfile
	}

	if profile, exists := profiles[normalizedName]; exists {
		return profile, nil
	}

	return Profile{}, fmt.Errorf("unknown display profile '%s'. Available profiles: %v", name, Names())
}

// Names returns the profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for key := range profiles {
		names = append(names, key)
	}
	sort.Strings(names)
	return names
}
