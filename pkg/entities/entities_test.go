package entities

import (
	"encoding/json"
	"testing"

	"github.com/diwise/entity-service/pkg/values"
	"github.com/matryer/is"
)

func TestCanonicalIdentifyingAttributesIgnoresInsertionOrder(t *testing.T) {
	is := is.New(t)

	a := New("Sensor",
		IdentifyingAttribute("serial", values.String("a1")),
		IdentifyingAttribute("vendor", values.String("acme")),
	)
	b := New("Sensor",
		IdentifyingAttribute("vendor", values.String("acme")),
		IdentifyingAttribute("serial", values.String("a1")),
	)

	is.Equal(a.CanonicalIdentifyingAttributes(), b.CanonicalIdentifyingAttributes())
}

func TestCanonicalIdentifyingAttributesDistinguishesValueTypes(t *testing.T) {
	is := is.New(t)

	a := New("Sensor", IdentifyingAttribute("serial", values.String("1")))
	b := New("Sensor", IdentifyingAttribute("serial", values.Long(1)))

	is.True(a.CanonicalIdentifyingAttributes() != b.CanonicalIdentifyingAttributes())
}

func TestEntityJSON(t *testing.T) {
	is := is.New(t)

	e := New("Sensor", ID("s1"), Attribute("temperature", values.Double(21.5)))

	b, err := json.Marshal(e)
	is.NoErr(err)

	var decoded Entity
	is.NoErr(json.Unmarshal(b, &decoded))
	is.Equal(decoded.EntityID, "s1")
	is.True(values.Equal(decoded.Attributes["temperature"], values.Double(21.5)))
}

func TestConditionValidation(t *testing.T) {
	is := is.New(t)

	is.NoErr(UpsertCondition{Attribute: "version", Operator: LessThan, Value: values.Long(3)}.Validate())
	is.True(UpsertCondition{Attribute: "", Operator: Equals}.Validate() != nil)
	is.True(UpsertCondition{Attribute: "v", Operator: "LIKE"}.Validate() != nil)
	is.True(UpsertCondition{Attribute: "v", Operator: Equals, Value: values.LongArray(1)}.Validate() != nil)
}
