package components

const (
	// CardHeight is the fixed height of a rendered card, borders included
	CardHeight = 5

	// columnOverhead is the border, header and scroll indicator rows of a column
	columnOverhead = 5

	// BannerWidth is the outer width of a notification banner
	BannerWidth = 36
)
