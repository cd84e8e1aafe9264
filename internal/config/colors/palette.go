package colors

// palette holds the Kanagawa colors shared by the wave, dragon and lotus presets
var palette = struct {
	sumiInk3, sumiInk4, sumiInk6         string
	waveBlue1, waveAqua2                 string
	winterGreen, winterBlue, winterRed   string
	samuraiRed, dragonBlue               string
	fujiWhite, fujiGray                  string
	oniViolet, crystalBlue               string
	springGreen, carpYellow, peachRed    string
	dragonBlack3, dragonBlack4           string
	dragonBlack6, dragonWhite            string
	dragonGreen, dragonGreen2            string
	dragonBlue2, dragonViolet, dragonRed string
	dragonAqua, dragonAsh, dragonYellow  string
	lotusInk1, lotusGray3                string
	lotusWhite3, lotusWhite4             string
	lotusViolet1, lotusViolet4           string
	lotusBlue1, lotusBlue2, lotusBlue4   string
	lotusGreen, lotusGreen3              string
	lotusOrange2, lotusYellow3           string
	lotusRed, lotusRed3, lotusRed4       string
	lotusAqua, lotusTeal3                string
}{
	sumiInk3: "#1F1F28", sumiInk4: "#2A2A37", sumiInk6: "#54546D",
	waveBlue1: "#223249", waveAqua2: "#7AA89F",
	winterGreen: "#2B3328", winterBlue: "#252535", winterRed: "#43242B",
	samuraiRed: "#E82424", dragonBlue: "#658594",
	fujiWhite: "#DCD7BA", fujiGray: "#727169",
	oniViolet: "#957FB8", crystalBlue: "#7E9CD8",
	springGreen: "#98BB6C", carpYellow: "#E6C384", peachRed: "#FF5D62",
	dragonBlack3: "#181616", dragonBlack4: "#282727",
	dragonBlack6: "#625E5A", dragonWhite: "#C5C9C5",
	dragonGreen: "#87A987", dragonGreen2: "#8A9A7B",
	dragonBlue2: "#8BA4B0", dragonViolet: "#8992A7", dragonRed: "#C4746E",
	dragonAqua: "#8EA4A2", dragonAsh: "#737C73", dragonYellow: "#C4B28A",
	lotusInk1: "#545464", lotusGray3: "#8A8980",
	lotusWhite3: "#F2ECBC", lotusWhite4: "#E7DBA0",
	lotusViolet1: "#A09CAC", lotusViolet4: "#624C83",
	lotusBlue1: "#C7D7E0", lotusBlue2: "#B5CBD2", lotusBlue4: "#4D699B",
	lotusGreen: "#6F894E", lotusGreen3: "#B7D0AE",
	lotusOrange2: "#E98A00", lotusYellow3: "#DE9800",
	lotusRed: "#C84053", lotusRed3: "#E82424", lotusRed4: "#D9A594",
	lotusAqua: "#597B75", lotusTeal3: "#5A7785",
}
