package properties

var (
	// How many CSS pixels is one <unit>?
	// http://www.w3.org/TR/CSS21/syndata.html#length-units
	LengthsToPixels = map[string]Float{
		"px": 1,
		"pt": 1. / 0.75,
		"pc": 16.,             // LengthsToPixels["pt"] * 12
		"in": 96.,             // LengthsToPixels["pt"] * 72
		"cm": 96. / 2.54,      // LengthsToPixels["in"] / 2.54
		"mm": 96. / 25.4,      // LengthsToPixels["in"] / 25.4
		"q":  96. / 25.4 / 4., // LengthsToPixels["mm"] / 4
	}

	// Value in pixels of font-size for <absolute-size> keywords: 12pt (16px) for
	// medium, and scaling factors given in CSS3 for others:
	// http://www.w3.org/TR/css3-fonts/#font-size-prop
	FontSizeKeywords = map[string]Float{ // medium is 16px, others are a ratio of medium
		"xx-small": InitialStyle().FontSize * 3 / 5,
		"x-small":  InitialStyle().FontSize * 3 / 4,
		"small":    InitialStyle().FontSize * 8 / 9,
		"medium":   InitialStyle().FontSize * 1 / 1,
		"large":    InitialStyle().FontSize * 6 / 5,
		"x-large":  InitialStyle().FontSize * 3 / 2,
		"xx-large": InitialStyle().FontSize * 2 / 1,
	}

	// PageSizes stores the named page sizes, in pixels.
	// http://www.w3.org/TR/css3-page/#size
	PageSizes = map[string][2]Float{
		"a5":     {mm(148), mm(210)},
		"a4":     A4,
		"a3":     {mm(297), mm(420)},
		"b5":     {mm(176), mm(250)},
		"b4":     {mm(250), mm(353)},
		"letter": {in(8.5), in(11)},
		"legal":  {in(8.5), in(14)},
		"ledger": {in(11), in(17)},
	}

	// A4 is the default page size.
	A4 = [2]Float{mm(210), mm(297)}
)

func mm(v Float) Float { return v * 96. / 25.4 }

func in(v Float) Float { return v * 96. }
