package jmdict

// Raw element layout of a JMdict <entry>. Elements the importer does not use
// (re_restr, stagk, xref, ...) are left out and skipped by encoding/xml.

type xmlEntry struct {
	Sequence string       `xml:"ent_seq"`
	Kanji    []xmlKanji   `xml:"k_ele"`
	Reading  []xmlReading `xml:"r_ele"`
	Sense    []xmlSense   `xml:"sense"`
}

type xmlKanji struct {
	Text     string   `xml:"keb"`
	Info     []string `xml:"ke_inf"`
	Priority []string `xml:"ke_pri"`
}

type xmlReading struct {
	Text     string    `xml:"reb"`
	NoKanji  *struct{} `xml:"re_nokanji"`
	Info     []string  `xml:"re_inf"`
	Priority []string  `xml:"re_pri"`
}

type xmlSense struct {
	PartOfSpeech []string   `xml:"pos"`
	Field        []string   `xml:"field"`
	Misc         []string   `xml:"misc"`
	Dialect      []string   `xml:"dial"`
	Gloss        []xmlGloss `xml:"gloss"`
}

type xmlGloss struct {
	Language string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Type     string `xml:"g_type,attr"`
	Text     string `xml:",chardata"`
}
