package lang

// Text is the localized name and description of a catalog entity.
type Text struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Overrides keeps richer copy for catalog entities, keyed by entity id.
// Only consulted when the active language is OverrideLang.
type Overrides map[string]Text

// Localized returns the entity's text for the language. Each field falls back
// to the catalog's own text when no override exists for it.
func (o Overrides) Localized(entityID, code, name, desc string) Text {
	out := Text{Name: name, Description: desc}
	if Normalize(code) != OverrideLang {
		return out
	}
	mapped, ok := o[entityID]
	if !ok {
		return out
	}
	if mapped.Name != "" {
		out.Name = mapped.Name
	}
	if mapped.Description != "" {
		out.Description = mapped.Description
	}
	return out
}

// Demo is the Arabic copy for the seeded demo restaurant.
var Demo = Overrides{
	"item_1": {Name: "برجر ترافل سماش", Description: "قطعتين لحم، صوص ترافل، جبنة شيدر معتقة، بصل مكرمل"},
	"item_2": {Name: "تشيز برجر كلاسيك", Description: "ربع باوند مع جبنة أمريكية، خس، طماطم، والصوص الخاص"},
	"item_3": {Name: "ساندوتش دجاج سبايسي", Description: "صدر دجاج مقلي، كول سلو حار، مخلل، خبز بريوش"},
	"item_4": {Name: "بطاطس لوديد", Description: "بطاطس مقلية مع صوص الجبنة، قطع بيكون، وبصل أخضر"},
	"item_5": {Name: "عصير ليمون كرافت", Description: "ليمون طازج مع لمسة نعناع منعشة"},
	"cat_1":  {Name: "الأكثر طلباً"},
	"cat_2":  {Name: "برجر"},
	"cat_3":  {Name: "أطباق جانبية"},
	"cat_4":  {Name: "مشروبات"},
}

// Localized resolves text against the Demo overrides.
func Localized(entityID, code, name, desc string) Text {
	return Demo.Localized(entityID, code, name, desc)
}
