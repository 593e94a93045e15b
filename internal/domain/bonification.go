package domain

// Bonification is the result of resolving the client-bonification flag for
// a product on a date. Found distinguishes "no applicable price" from a
// price whose flag is false; both collapse to false through Bool.
type Bonification struct {
	Found    bool
	Bonified bool
}

func NoBonification() Bonification {
	return Bonification{}
}

func BonificationOf(flag bool) Bonification {
	return Bonification{Found: true, Bonified: flag}
}

func (b Bonification) Bool() bool {
	return b.Found && b.Bonified
}
