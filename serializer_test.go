package anyentail

import (
	"reflect"
	"testing"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/anyvec/anyvec64"
	"github.com/unixpickle/serializer"
)

func TestActivationSerialize(t *testing.T) {
	acts := []Activation{Linear, Tanh, Sigmoid, ReLU, Sin, Softmax, LogSoftmax}
	for _, a := range acts {
		data, err := serializer.SerializeAny(a)
		if err != nil {
			t.Fatal(err)
		}
		var newA Activation
		if err := serializer.DeserializeAny(data, &newA); err != nil {
			t.Fatal(err)
		}
		if newA != a {
			t.Errorf("%s: got %s", a, newA)
		}
	}
}

func TestDenseSerialize(t *testing.T) {
	d := NewDense(anyvec32.DefaultCreator{}, 7, 5, Sigmoid)
	data, err := serializer.SerializeAny(d)
	if err != nil {
		t.Fatal(err)
	}
	var newD *Dense
	if err := serializer.DeserializeAny(data, &newD); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(d, newD) {
		t.Fatal("incorrect result")
	}
}

func TestCombinerSerialize(t *testing.T) {
	combs := []Combiner{&MemoryOnly{Dim: 4}, &HeuristicMatching{Dim: 9}}
	for _, comb := range combs {
		data, err := serializer.SerializeAny(comb.(serializer.Serializer))
		if err != nil {
			t.Fatal(err)
		}
		var newComb Combiner
		if err := serializer.DeserializeAny(data, &newComb); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(comb, newComb) {
			t.Errorf("expected %#v but got %#v", comb, newComb)
		}
	}
}

func TestHeadSerialize(t *testing.T) {
	c := anyvec64.DefaultCreator{}
	for _, kind := range []ClassifierKind{TrueFalseMLP, MultipleChoiceMLP, QuestionAnswerMLP} {
		head, err := NewHead(c, testConfig(kind))
		if err != nil {
			t.Fatal(err)
		}
		data, err := serializer.SerializeAny(head)
		if err != nil {
			t.Fatal(err)
		}
		var newHead *Head
		if err := serializer.DeserializeAny(data, &newHead); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(head, newHead) {
			t.Errorf("%s: heads not equal", kind)
			continue
		}

		triples := 2
		if kind == MultipleChoiceMLP {
			triples *= 3
		}
		in := anydiff.NewConst(randomVector(triples * 9))
		answers := anydiff.NewConst(randomVector(2 * 3 * 4))
		expected := head.Apply(in, answers, 2).Output()
		actual := newHead.Apply(in, answers, 2).Output().Copy()
		actual.Sub(expected)
		if anyvec.AbsMax(actual).(float64) > 1e-8 {
			t.Errorf("%s: outputs differ after deserialization", kind)
		}
	}
}

func TestNetSerialize(t *testing.T) {
	net := anynet.Net{&HeuristicMatching{Dim: 2}, Tanh, &Probe{Name: "p", Mean: true}}
	data, err := serializer.SerializeAny(net)
	if err != nil {
		t.Fatal(err)
	}
	var net1 anynet.Net
	if err := serializer.DeserializeAny(data, &net1); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(net, net1) {
		t.Fatal("networks not equal")
	}
}

func TestDeserializeInvalid(t *testing.T) {
	c := anyvec64.DefaultCreator{}

	badDense := &Dense{
		InCount:  3,
		OutCount: 2,
		Weights:  anydiff.NewVar(c.MakeVector(7)),
		Biases:   anydiff.NewVar(c.MakeVector(2)),
	}
	data, err := badDense.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DeserializeDense(data); err == nil {
		t.Error("expected error for mismatched Dense dimensions")
	}

	badMC := &MultipleChoice{
		Options: 0,
		Hidden:  anynet.Net{},
		Score:   NewDense(c, 4, 1, Sigmoid),
	}
	data, err = badMC.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DeserializeMultipleChoice(data); err == nil {
		t.Error("expected error for zero options")
	}

	data, err = (&MemoryOnly{Dim: 0}).Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DeserializeMemoryOnly(data); err == nil {
		t.Error("expected error for zero MemoryOnly dimension")
	}
	data, err = (&HeuristicMatching{Dim: -2}).Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DeserializeHeuristicMatching(data); err == nil {
		t.Error("expected error for negative HeuristicMatching dimension")
	}

	garbage := []byte{1, 2, 3}
	if _, err := DeserializeDense(garbage); err == nil {
		t.Error("expected error for malformed Dense data")
	}
	if _, err := DeserializeMultipleChoice(garbage); err == nil {
		t.Error("expected error for malformed MultipleChoice data")
	}
}
