package rdf

// Triple is a single (subject, predicate, object) statement.
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// key returns a stable string identifying the triple for use as a set key.
func (t Triple) key() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String()
}

// String renders the triple in N-Triples-like form.
func (t Triple) String() string {
	return t.key() + " ."
}
