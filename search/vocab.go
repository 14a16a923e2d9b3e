package search

// hebrewColors maps Hebrew color words to the catalog's English color names.
// Keys are unpointed base forms; inflected query forms reach them through
// morphological expansion.
var hebrewColors = map[string]string{
	"שחור": "black",
	"לבן":  "white",
	"אדום": "red",
	"כחול": "blue",
	"ירוק": "green",
	"צהוב": "yellow",
	"חום":  "brown",
	"אפור": "gray",
	"ורוד": "pink",
	"סגול": "purple",
	"כתום": "orange",
}

// englishColors is the Latin-script color vocabulary, in folded form.
var englishColors = map[string]struct{}{
	"black":  {},
	"white":  {},
	"red":    {},
	"blue":   {},
	"green":  {},
	"yellow": {},
	"brown":  {},
	"gray":   {},
	"grey":   {},
	"pink":   {},
	"purple": {},
	"orange": {},
}

// sizeStopWords are size-indicator words stripped from the category phrase.
// Latin entries match folded, Hebrew entries match exactly.
var sizeStopWords = map[string]struct{}{
	"size":  {},
	"sizes": {},
	"מידה":  {},
	"מידות": {},
}
