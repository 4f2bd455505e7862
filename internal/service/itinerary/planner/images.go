package planner

import (
	"hash/fnv"
	"strings"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

const defaultDestinationImage = "https://images.unsplash.com/photo-1488646953014-85cb44e25828?auto=format&fit=crop&w=2000&q=80"

// destinationImages maps well-known city names to cover images.
var destinationImages = []struct {
	key string
	url string
}{
	{"paris", "https://images.unsplash.com/photo-1502602898657-3e91760cbb34?auto=format&fit=crop&w=2000&q=80"},
	{"london", "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad?auto=format&fit=crop&w=2000&q=80"},
	{"new york", "https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9?auto=format&fit=crop&w=2000&q=80"},
	{"tokyo", "https://images.unsplash.com/photo-1540959733332-eab4deabeeaf?auto=format&fit=crop&w=2000&q=80"},
	{"dubai", "https://images.unsplash.com/photo-1512453979798-5ea266f8880c?auto=format&fit=crop&w=2000&q=80"},
}

var fallbackImages = map[domain.ItemType][]string{
	domain.ItemTypeHotel: {
		"https://images.unsplash.com/photo-1566073771259-6a8506099945?auto=format&fit=crop&w=1000&q=80",
		"https://images.unsplash.com/photo-1551882547-ff40c63fe5fa?auto=format&fit=crop&w=1000&q=80",
		"https://images.unsplash.com/photo-1445019980597-93fa8acb246c?auto=format&fit=crop&w=1000&q=80",
	},
	domain.ItemTypeRestaurant: {
		"https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?auto=format&fit=crop&w=1000&q=80",
		"https://images.unsplash.com/photo-1552566626-52f8b828add9?auto=format&fit=crop&w=1000&q=80",
		"https://images.unsplash.com/photo-1559339352-11d035aa65de?auto=format&fit=crop&w=1000&q=80",
	},
	domain.ItemTypeActivity: {
		"https://images.unsplash.com/photo-1533105079780-92b9be482077?auto=format&fit=crop&w=1000&q=80",
		"https://images.unsplash.com/photo-1527631746610-bca00a040d60?auto=format&fit=crop&w=1000&q=80",
		"https://images.unsplash.com/photo-1501555088652-021faa106b9b?auto=format&fit=crop&w=1000&q=80",
	},
}

var defaultFallbackImages = []string{
	"https://images.unsplash.com/photo-1488646953014-85cb44e25828?auto=format&fit=crop&w=1000&q=80",
	"https://images.unsplash.com/photo-1469854523086-cc02fe5d8800?auto=format&fit=crop&w=1000&q=80",
}

// DestinationImage returns the cover image for a destination. Matching is
// case-insensitive on a substring, so "Paris, France" finds paris.
func DestinationImage(name string) string {
	lower := strings.ToLower(name)
	for _, d := range destinationImages {
		if strings.Contains(lower, d.key) {
			return d.url
		}
	}
	return defaultDestinationImage
}

// FallbackImage picks a stock image for an item without a photo. The
// choice depends only on itemType and key so repeated calls agree.
func FallbackImage(itemType domain.ItemType, key string) string {
	images, ok := fallbackImages[itemType]
	if !ok {
		images = defaultFallbackImages
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(key))))
	return images[h.Sum32()%uint32(len(images))]
}
