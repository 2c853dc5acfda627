package anyentail

import (
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var q QuestionAnswer
	serializer.RegisterTypedDeserializer(q.SerializerType(), DeserializeQuestionAnswer)
}

// QuestionAnswer is a Classifier which projects the
// combined input into the answer encoding space and
// scores each answer option by its dot product with the
// projection.
//
// The answers passed to LogProbs pack, for each example,
// one encoded answer after another.
// The number of options is inferred from the length of
// the answers.
type QuestionAnswer struct {
	Hidden anynet.Net

	// Projection maps the hidden output to the answer
	// dimension.
	Projection *Dense
}

// DeserializeQuestionAnswer deserializes a QuestionAnswer.
func DeserializeQuestionAnswer(d []byte) (*QuestionAnswer, error) {
	var res QuestionAnswer
	if err := serializer.DeserializeAny(d, &res.Hidden, &res.Projection); err != nil {
		return nil, essentials.AddCtx("deserialize QuestionAnswer", err)
	}
	return &res, nil
}

// AnswerDim returns the length of each encoded answer.
func (q *QuestionAnswer) AnswerDim() int {
	return q.Projection.OutCount
}

// LogProbs computes a log-softmax over the similarity
// scores of the answer options.
func (q *QuestionAnswer) LogProbs(combined, answers anydiff.Res, batch int) anydiff.Res {
	scores := q.Similarities(combined, answers, batch)
	return anydiff.LogSoftmax(scores, scores.Output().Len()/batch)
}

// Similarities computes the unnormalized score of every
// answer option: the dot product between the projected
// combined input and the encoded answer.
func (q *QuestionAnswer) Similarities(combined, answers anydiff.Res, batch int) anydiff.Res {
	if answers == nil {
		panic("answers are required")
	}
	dim := q.AnswerDim()
	ansLen := answers.Output().Len()
	if ansLen == 0 || ansLen%(batch*dim) != 0 {
		panic(fmt.Sprintf("answers length %d not divisible by answer dim %d times batch %d",
			ansLen, dim, batch))
	}
	options := ansLen / (batch * dim)
	projected := q.Projection.Apply(q.Hidden.Apply(combined, batch), batch)
	return anydiff.Pool(projected, func(projected anydiff.Res) anydiff.Res {
		return anydiff.Pool(answers, func(answers anydiff.Res) anydiff.Res {
			var res []anydiff.Res
			for i := 0; i < batch; i++ {
				answerMat := &anydiff.Matrix{
					Data: anydiff.Slice(answers, i*options*dim, (i+1)*options*dim),
					Rows: options,
					Cols: dim,
				}
				projMat := &anydiff.Matrix{
					Data: anydiff.Slice(projected, i*dim, (i+1)*dim),
					Rows: 1,
					Cols: dim,
				}
				res = append(res, anydiff.MatMul(false, true, answerMat, projMat).Data)
			}
			return anydiff.Concat(res...)
		})
	})
}

// Classes returns 0, since the option count comes from
// the answers.
func (q *QuestionAnswer) Classes() int {
	return 0
}

// Parameters returns the hidden parameters followed by the
// projection parameters.
func (q *QuestionAnswer) Parameters() []*anydiff.Var {
	return allParameters(q.Hidden, q.Projection)
}

// SerializerType returns the unique ID used to serialize
// a QuestionAnswer with the serializer package.
func (q *QuestionAnswer) SerializerType() string {
	return "github.com/sachuin23/anyentail.QuestionAnswer"
}

// Serialize serializes the classifier.
func (q *QuestionAnswer) Serialize() ([]byte, error) {
	return serializer.SerializeAny(q.Hidden, q.Projection)
}
