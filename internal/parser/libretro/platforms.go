package libretro

// platformInfo binds a catalog platform to its libretro system name and
// the DAT files (relative to the libretro data directory) carrying its
// serial metadata.
type platformInfo struct {
	system string
	dats   []string
}

var platforms = map[string]platformInfo{
	"nes": {
		system: "Nintendo - Nintendo Entertainment System",
		dats: []string{
			"metadat/no-intro/Nintendo - Nintendo Entertainment System.dat",
			"dat/Nintendo - Nintendo Entertainment System.dat",
		},
	},
	"fds": {
		system: "Nintendo - Family Computer Disk System",
		dats: []string{
			"metadat/no-intro/Nintendo - Family Computer Disk System.dat",
		},
	},
	"snes": {
		system: "Nintendo - Super Nintendo Entertainment System",
		dats: []string{
			"metadat/no-intro/Nintendo - Super Nintendo Entertainment System.dat",
			"dat/Nintendo - Super Nintendo Entertainment System.dat",
		},
	},
	"gb": {
		system: "Nintendo - Game Boy",
		dats: []string{
			"metadat/no-intro/Nintendo - Game Boy.dat",
		},
	},
	"gbc": {
		system: "Nintendo - Game Boy Color",
		dats: []string{
			"metadat/no-intro/Nintendo - Game Boy Color.dat",
		},
	},
	"gba": {
		system: "Nintendo - Game Boy Advance",
		dats: []string{
			"metadat/no-intro/Nintendo - Game Boy Advance.dat",
		},
	},
	"min": {
		system: "Nintendo - Pokemon Mini",
		dats: []string{
			"metadat/no-intro/Nintendo - Pokemon Mini.dat",
		},
	},
	"vb": {
		system: "Nintendo - Virtual Boy",
		dats: []string{
			"metadat/no-intro/Nintendo - Virtual Boy.dat",
		},
	},
	"n64": {
		system: "Nintendo - Nintendo 64",
		dats: []string{
			"metadat/no-intro/Nintendo - Nintendo 64.dat",
		},
	},
	"ndd": {
		system: "Nintendo - Nintendo 64DD",
		dats: []string{
			"metadat/no-intro/Nintendo - Nintendo 64DD.dat",
		},
	},
	"gc": {
		system: "Nintendo - GameCube",
		dats: []string{
			"metadat/redump/Nintendo - GameCube.dat",
			"dat/Nintendo - GameCube.dat",
		},
	},
	"nds": {
		system: "Nintendo - Nintendo DS",
		dats: []string{
			"metadat/no-intro/Nintendo - Nintendo DS.dat",
			"metadat/no-intro/Nintendo - Nintendo DS (Download Play).dat",
		},
	},
	"dsi": {
		system: "Nintendo - Nintendo DSi",
		dats: []string{
			"metadat/no-intro/Nintendo - Nintendo DSi.dat",
		},
	},
	"wii": {
		system: "Nintendo - Wii",
		dats: []string{
			"metadat/redump/Nintendo - Wii.dat",
			"dat/Nintendo - Wii.dat",
		},
	},
	"3ds": {
		system: "Nintendo - Nintendo 3DS",
		dats: []string{
			"metadat/no-intro/Nintendo - Nintendo 3DS.dat",
			"metadat/no-intro/Nintendo - Nintendo 3DS (Digital).dat",
		},
	},
	"n3ds": {
		system: "Nintendo - Nintendo 3DS",
		dats: []string{
			"metadat/no-intro/Nintendo - New Nintendo 3DS.dat",
			"metadat/no-intro/Nintendo - New Nintendo 3DS (Digital).dat",
		},
	},
	"wiiu": {
		system: "Nintendo - Wii U",
		dats: []string{
			"dat/Nintendo - Wii U.dat",
		},
	},
	"ps1": {
		system: "Sony - PlayStation",
		dats: []string{
			"metadat/redump/Sony - PlayStation.dat",
		},
	},
	"ps2": {
		system: "Sony - PlayStation 2",
		dats: []string{
			"metadat/redump/Sony - PlayStation 2.dat",
		},
	},
	"psp": {
		system: "Sony - PlayStation Portable",
		dats: []string{
			"metadat/redump/Sony - PlayStation Portable.dat",
			"metadat/no-intro/Sony - PlayStation Portable.dat",
			"metadat/no-intro/Sony - PlayStation Portable (PSN).dat",
			"metadat/no-intro/Sony - PlayStation Portable (PSX2PSP).dat",
			"metadat/no-intro/Sony - PlayStation Portable (UMD Music).dat",
			"metadat/no-intro/Sony - PlayStation Portable (UMD Video).dat",
			"dat/Sony - PlayStation Minis.dat",
		},
	},
	"ps3": {
		system: "Sony - PlayStation 3",
		dats: []string{
			"metadat/no-intro/Sony - PlayStation 3 (PSN).dat",
			"dat/Sony - PlayStation 3.dat",
		},
	},
	"psv": {
		system: "Sony - PlayStation Vita",
		dats: []string{
			"metadat/no-intro/Sony - PlayStation Vita.dat",
			"metadat/no-intro/Sony - PlayStation Vita (PSN).dat",
		},
	},
	"xbox": {
		system: "Microsoft - Xbox",
		dats: []string{
			"metadat/redump/Microsoft - Xbox.dat",
		},
	},
	"x360": {
		system: "Microsoft - Xbox 360",
		dats: []string{
			"metadat/redump/Microsoft - Xbox 360.dat",
			"metadat/no-intro/Microsoft - Xbox 360.dat",
			"metadat/no-intro/Microsoft - Xbox 360 (Digital).dat",
		},
	},
	"sms": {
		system: "Sega - Master System - Mark III",
		dats: []string{
			"metadat/no-intro/Sega - Master System - Mark III.dat",
		},
	},
	"gg": {
		system: "Sega - Game Gear",
		dats: []string{
			"metadat/no-intro/Sega - Game Gear.dat",
		},
	},
	"smd": {
		system: "Sega - Mega Drive - Genesis",
		dats: []string{
			"metadat/no-intro/Sega - Mega Drive - Genesis.dat",
		},
	},
	"scd": {
		system: "Sega - Mega-CD - Sega CD",
		dats: []string{
			"metadat/redump/Sega - Mega-CD - Sega CD.dat",
		},
	},
	"32x": {
		system: "Sega - 32X",
		dats: []string{
			"metadat/no-intro/Sega - 32X.dat",
		},
	},
	"sat": {
		system: "Sega - Saturn",
		dats: []string{
			"metadat/redump/Sega - Saturn.dat",
			"dat/Sega - Saturn.dat",
		},
	},
	"dc": {
		system: "Sega - Dreamcast",
		dats: []string{
			"metadat/redump/Sega - Dreamcast.dat",
		},
	},
	"mame": {
		system: "MAME",
	},
	"a26": {
		system: "Atari - 2600",
		dats: []string{
			"metadat/no-intro/Atari - 2600.dat",
		},
	},
	"a52": {
		system: "Atari - 5200",
		dats: []string{
			"metadat/no-intro/Atari - 5200.dat",
		},
	},
	"a78": {
		system: "Atari - 7800",
		dats: []string{
			"metadat/no-intro/Atari - 7800.dat",
		},
	},
	"lynx": {
		system: "Atari - Lynx",
		dats: []string{
			"metadat/no-intro/Atari - Lynx.dat",
		},
	},
	"jag": {
		system: "Atari - Jaguar",
		dats: []string{
			"metadat/no-intro/Atari - Jaguar.dat",
		},
	},
	"jcd": {
		system: "Atari - Jaguar CD",
		dats: []string{
			"metadat/redump/Atari - Jaguar CD.dat",
		},
	},
	"tg16": {
		system: "NEC - PC Engine - TurboGrafx 16",
		dats: []string{
			"metadat/no-intro/NEC - PC Engine - TurboGrafx 16.dat",
		},
	},
	"tgcd": {
		system: "NEC - PC Engine CD - TurboGrafx-CD",
		dats: []string{
			"metadat/redump/NEC - PC Engine CD - TurboGrafx-CD.dat",
		},
	},
	"pcfx": {
		system: "NEC - PC-FX",
		dats: []string{
			"metadat/redump/NEC - PC-FX.dat",
		},
	},
	"pc98": {
		system: "NEC - PC-98",
		dats: []string{
			"metadat/redump/NEC - PC-98.dat",
			"dat/NEC - PC-98.dat",
		},
	},
	"intv": {
		system: "Mattel - Intellivision",
		dats: []string{
			"metadat/no-intro/Mattel - Intellivision.dat",
		},
	},
	"cv": {
		system: "Coleco - ColecoVision",
		dats: []string{
			"metadat/no-intro/Coleco - ColecoVision.dat",
		},
	},
	"3do": {
		system: "The 3DO Company - 3DO",
		dats: []string{
			"metadat/redump/The 3DO Company - 3DO.dat",
		},
	},
	"cdi": {
		system: "Philips - CD-i",
		dats: []string{
			"metadat/redump/Philips - CD-i.dat",
		},
	},
	"ngcd": {
		system: "SNK - Neo Geo CD",
		dats: []string{
			"metadat/redump/SNK - Neo Geo CD.dat",
		},
	},
}
