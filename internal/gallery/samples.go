package gallery

// Placeholder photo IDs, cycled over the sample images.
var samplePhotoIDs = []string{
	"1506905925346-21bda4d32df4",
	"1519681393784-d120267933ba",
	"1505142468610-359e5e6f785e",
	"1519996529931-28324d5a630e",
	"1506905925346-21bda4d32df4",
	"1519681393784-d120267933ba",
}

var sampleImages = []Image{
	{Filename: "mountain-view.jpg", Title: "Mountain Landscape", Description: "Scenic view of mountains during sunrise", Category: "nature"},
	{Filename: "city-skyline.jpg", Title: "City Skyline", Description: "Downtown skyline at dusk", Category: "urban"},
	{Filename: "beach-sunset.jpg", Title: "Beach Sunset", Description: "Golden hour at the beach", Category: "nature"},
	{Filename: "architecture-detail.jpg", Title: "Architectural Detail", Description: "Historical building details", Category: "architecture"},
	{Filename: "forest-path.jpg", Title: "Forest Path", Description: "Walking path through dense forest", Category: "nature"},
	{Filename: "market-street.jpg", Title: "Local Market", Description: "Busy street market scene", Category: "urban"},
	{Filename: "lake-reflection.jpg", Title: "Lake Reflection", Description: "Perfect reflection in mountain lake", Category: "nature"},
	{Filename: "modern-building.jpg", Title: "Modern Architecture", Description: "Contemporary building design", Category: "architecture"},
}

// SampleImages returns the placeholder images shown by an unconfigured
// gallery. Each call returns a fresh slice.
func SampleImages() []Image {
	out := make([]Image, len(sampleImages))
	for i, img := range sampleImages {
		img.URL = "https://images.unsplash.com/photo-" + samplePhotoIDs[i%len(samplePhotoIDs)] +
			"?auto=format&fit=crop&w=800&q=80"
		img.Description += " (Sample Image)"
		out[i] = img
	}
	return out
}
