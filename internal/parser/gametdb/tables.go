package gametdb

import "regexp"

var xmlFilenames = []string{
	"dstdb.xml",
	"wiitdb.xml",
	"3dstdb.xml",
	"wiiutdb.xml",
	"ps3tdb.xml",
}

// platformXMLMap picks the TDB file covering each platform.
var platformXMLMap = map[string]string{
	"nds":  "dstdb.xml",
	"dsi":  "dstdb.xml",
	"wii":  "wiitdb.xml",
	"gc":   "wiitdb.xml",
	"3ds":  "3dstdb.xml",
	"n3ds": "3dstdb.xml",
	"wiiu": "wiiutdb.xml",
	"ps3":  "ps3tdb.xml",
}

// typePlatformMap resolves a TDB game type to a catalog platform; TDB
// files mix several platforms (GameCube inside wiitdb, New3DS inside
// 3dstdb) so the type decides where a game actually belongs.
var typePlatformMap = map[string]map[string]string{
	"dstdb.xml": {
		"DS":      "nds",
		"DSi":     "dsi",
		"DSiWare": "dsi",
		"CUSTOM":  "nds",
	},
	"wiitdb.xml": {
		"WiiWare":   "wii",
		"VC-NES":    "wii",
		"VC-SNES":   "wii",
		"VC-N64":    "wii",
		"VC-SMS":    "wii",
		"VC-MD":     "wii",
		"VC-PCE":    "wii",
		"VC-NEOGEO": "wii",
		"VC-Arcade": "wii",
		"VC-C64":    "wii",
		"VC-MSX":    "wii",
		"Channel":   "wii",
		"GameCube":  "gc",
		"Homebrew":  "wii",
		"CUSTOM":    "wii",
	},
	"3dstdb.xml": {
		"3DS":        "3ds",
		"None":       "3ds",
		"3DSWare":    "3ds",
		"New3DS":     "n3ds",
		"New3DSWare": "n3ds",
		"VC-NES":     "3ds",
		"VC-GB":      "3ds",
		"VC-GBC":     "3ds",
		"VC-GBA":     "3ds",
		"VC-GG":      "3ds",
		"CUSTOM":     "3ds",
		"Homebrew":   "3ds",
	},
	"wiiutdb.xml": {
		"WiiU":    "wiiu",
		"eShop":   "wiiu",
		"VC-NES":  "wiiu",
		"VC-SNES": "wiiu",
		"VC-N64":  "wiiu",
		"VC-GBA":  "wiiu",
		"VC-DS":   "wiiu",
		"VC-PCE":  "wiiu",
		"VC-MSX":  "wiiu",
		"Channel": "wiiu",
		"CUSTOM":  "wiiu",
	},
	"ps3tdb.xml": {
		"PS3":      "ps3",
		"CUSTOM":   "ps3",
		"SEN":      "ps3",
		"Homebrew": "ps3",
	},
}

// regionRegionMap converts a TDB region label to a catalog region code.
var regionRegionMap = map[string]string{
	"NTSC-U": "us",
	"NTSC-J": "jp",
	"PAL":    "eu",
	"NTSC-K": "other",
	"NTSC-T": "other",
	"PAL-R":  "other",
	"NTSC-A": "other",
}

// idRegionCodePatterns capture the region code inside a full TDB ID.
var idRegionCodePatterns = map[string]*regexp.Regexp{
	"dstdb.xml":   regexp.MustCompile(`^.{3}(.)`),
	"wiitdb.xml":  regexp.MustCompile(`^.{3}(.)`),
	"3dstdb.xml":  regexp.MustCompile(`^.{3}(.)`),
	"wiiutdb.xml": regexp.MustCompile(`^.{3}(.)`),
	"ps3tdb.xml":  regexp.MustCompile(`^([A-Z]{4})`),
}

// artworkCountries lists every country directory GameTDB hosts artwork
// under, in fallback probe order.
var artworkCountries = []string{
	"US", "EN", "JA", "FR", "DE", "ES", "IT", "NL", "PT", "NO", "FI", "SE",
	"ZH", "KO", "RU", "AU", "DK", "other",
}

type regionCountry struct {
	pattern *regexp.Regexp
	country string
}

// regionCodeCountries map region codes to artwork countries. Order
// matters: the first matching pattern wins, and the empty pattern is the
// catch-all.
var regionCodeCountries = map[string][]regionCountry{
	"dstdb.xml": {
		{regexp.MustCompile(`E`), "US"},
		{regexp.MustCompile(`J`), "JA"},
		{regexp.MustCompile(`K`), "KO"},
		{regexp.MustCompile(`D`), "DE"},
		{regexp.MustCompile(`F`), "FR"},
		{regexp.MustCompile(`H`), "NL"},
		{regexp.MustCompile(`I`), "IT"},
		{regexp.MustCompile(`S`), "ES"},
		{regexp.MustCompile(`Z`), "SE"},
		{regexp.MustCompile(`N`), "NO"},
		{regexp.MustCompile(`Q`), "DK"},
		{regexp.MustCompile(`M`), "SE"},
		{regexp.MustCompile(`G`), "GR"},
		{regexp.MustCompile(`T`), "US"},
		{regexp.MustCompile(``), "EN"},
	},
	"wiitdb.xml": {
		{regexp.MustCompile(`E`), "US"},
		{regexp.MustCompile(`J`), "JA"},
		{regexp.MustCompile(`D`), "DE"},
		{regexp.MustCompile(`F`), "FR"},
		{regexp.MustCompile(`S`), "ES"},
		{regexp.MustCompile(`M`), "SE"},
		{regexp.MustCompile(`Y`), "DE"},
		{regexp.MustCompile(`K`), "KO"},
		{regexp.MustCompile(`H`), "NL"},
		{regexp.MustCompile(`I`), "IT"},
		{regexp.MustCompile(`Z`), "ES"},
		{regexp.MustCompile(``), "EN"},
	},
	"3dstdb.xml": {
		{regexp.MustCompile(`J`), "JA"},
		{regexp.MustCompile(`E`), "US"},
		{regexp.MustCompile(`K`), "KO"},
		{regexp.MustCompile(`D`), "DE"},
		{regexp.MustCompile(`W`), "ZH"},
		{regexp.MustCompile(`I`), "IT"},
		{regexp.MustCompile(`H`), "NL"},
		{regexp.MustCompile(`V`), "IT"},
		{regexp.MustCompile(``), "EN"},
	},
	"wiiutdb.xml": {
		{regexp.MustCompile(`E`), "US"},
		{regexp.MustCompile(`J`), "JA"},
		{regexp.MustCompile(`R`), "RU"},
		{regexp.MustCompile(`A`), "JA"},
		{regexp.MustCompile(``), "EN"},
	},
	"ps3tdb.xml": {
		{regexp.MustCompile(`BCAS`), "ZH"},
		{regexp.MustCompile(`BCAX`), "JA"},
		{regexp.MustCompile(`BCJB`), "JA"},
		{regexp.MustCompile(`BCJN`), "JA"},
		{regexp.MustCompile(`BCJS`), "JA"},
		{regexp.MustCompile(`BCJX`), "JA"},
		{regexp.MustCompile(`BCKS`), "KO"},
		{regexp.MustCompile(`BCUS`), "US"},
		{regexp.MustCompile(`BLAS`), "ZH"},
		{regexp.MustCompile(`BLJB`), "JA"},
		{regexp.MustCompile(`BLJM`), "JA"},
		{regexp.MustCompile(`BLJS`), "JA"},
		{regexp.MustCompile(`BLKS`), "KO"},
		{regexp.MustCompile(`BLMJ`), "JA"},
		{regexp.MustCompile(`BLUS`), "US"},
		{regexp.MustCompile(`CPCS`), "JA"},
		{regexp.MustCompile(`HOP3`), "JA"},
		{regexp.MustCompile(`KTGS`), "JA"},
		{regexp.MustCompile(`XCUS`), "US"},
		{regexp.MustCompile(`..J.`), "JA"},
		{regexp.MustCompile(`..U.`), "US"},
		{regexp.MustCompile(`..H.`), "US"},
		{regexp.MustCompile(``), "EN"},
	},
}

// serialIDPatterns extract the GameTDB ID fragment from a ROM serial.
var serialIDPatterns = map[string]*regexp.Regexp{
	"nds":  regexp.MustCompile(`(\w{4})`),
	"dsi":  regexp.MustCompile(`(\w{4})`),
	"wii":  regexp.MustCompile(`(\w{4})`),
	"gc":   regexp.MustCompile(`(\w{4})`),
	"3ds":  regexp.MustCompile(`(\w{4})`),
	"n3ds": regexp.MustCompile(`(\w{4})`),
	"wiiu": regexp.MustCompile(`(\w{6}|\w{4})`),
	"ps3":  regexp.MustCompile(`(\w{4}).*(\w{5})`),
}

// boxartPlatformPaths pick the artwork directory per platform.
var boxartPlatformPaths = map[string]string{
	"nds":  "ds/coverS",
	"dsi":  "ds/coverS",
	"wii":  "wii/cover",
	"gc":   "wii/cover",
	"3ds":  "3ds/coverM",
	"n3ds": "3ds/coverM",
	"wiiu": "wiiu/coverM",
	"ps3":  "ps3/cover",
}
