package pronunciation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/songlingo/songlingo/internal/provider"
	"github.com/songlingo/songlingo/internal/song"
)

//go:generate mockgen -source=synthesizer.go -destination=../mocks/pronunciation/mock_synthesizer.go -package=mock_pronunciation

// ExerciseGenerator is the generation call of the provider gateway.
type ExerciseGenerator interface {
	GenerateExercises(ctx context.Context, prompt string, schema provider.Schema) (json.RawMessage, error)
}

// ExerciseSynthesizer turns a request and its song into a validated exercise list.
type ExerciseSynthesizer struct {
	generator ExerciseGenerator
}

func NewExerciseSynthesizer(generator ExerciseGenerator) *ExerciseSynthesizer {
	return &ExerciseSynthesizer{generator: generator}
}

// Synthesize returns between MinExercises and MaxExercises exercises in model
// order, or an error matching provider.ErrSchemaViolation when too few are valid.
func (s *ExerciseSynthesizer) Synthesize(ctx context.Context, req ExerciseRequest, sg song.Song) ([]GeneratedExercise, error) {
	raw, err := s.generator.GenerateExercises(ctx, BuildPrompt(req, sg), ExerciseSchema())
	if err != nil {
		return nil, fmt.Errorf("generator.GenerateExercises > %w", err)
	}
	return validateExercises(raw, req.Vocabulary)
}

// ExerciseSchema is the output schema enforced by the generative model.
func ExerciseSchema() provider.Schema {
	return provider.Schema{
		Name: "pronunciation_exercises",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []string{"exercises"},
			"properties": map[string]any{
				"exercises": map[string]any{
					"type":     "array",
					"minItems": MinExercises,
					"maxItems": MaxExercises,
					"items": map[string]any{
						"type":                 "object",
						"additionalProperties": false,
						"required":             []string{"wordOrPhrase", "phoneticTranscription", "contextSentence", "vocabularyRecordId"},
						"properties": map[string]any{
							"wordOrPhrase": map[string]any{
								"type":        "string",
								"description": "A single word or short phrase of 1 to 3 words from or related to the song.",
							},
							"phoneticTranscription": map[string]any{
								"type":        "string",
								"description": "IPA transcription of wordOrPhrase.",
							},
							"contextSentence": map[string]any{
								"type":        "string",
								"description": "A longer example sentence using wordOrPhrase.",
							},
							"vocabularyRecordId": map[string]any{
								"type":        []string{"string", "null"},
								"description": "The id of the learner vocabulary item this exercise targets, or null.",
							},
						},
					},
				},
			},
		},
	}
}

// BuildPrompt renders the generation instructions for one request.
func BuildPrompt(req ExerciseRequest, sg song.Song) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d to %d pronunciation exercises in %s for a %s learner studying the song %q by %s.\n\n",
		MinExercises, MaxExercises, req.Language, req.Difficulty, sg.Title, sg.Artist)

	b.WriteString("Choose the words to practice in this order of priority:\n")
	b.WriteString("1. Vocabulary the learner is struggling with (mastery score below 50).\n")
	b.WriteString("2. Vocabulary words that also appear in the song lyrics.\n")
	fmt.Fprintf(&b, "3. Pronunciation challenges that are typical for %s.\n", req.Language)
	fmt.Fprintf(&b, "4. Phonetic patterns appropriate for the %s level: %s.\n\n", req.Difficulty, difficultyGuidance(req.Difficulty))

	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- wordOrPhrase is 1 to %d words, never a full sentence.\n", MaxWordTokens)
	b.WriteString("- contextSentence is a different, longer example sentence that uses wordOrPhrase.\n")
	b.WriteString("- phoneticTranscription is the IPA transcription of wordOrPhrase.\n")
	b.WriteString("- vocabularyRecordId is the id of the vocabulary item you target, or null for a word that is not in the list.\n\n")

	struggling, others := splitVocabulary(req.Vocabulary, sg.Lyrics)
	writeVocabulary(&b, "Struggling vocabulary", struggling)
	writeVocabulary(&b, "Other vocabulary", others)

	b.WriteString("Song lyrics:\n")
	b.WriteString(sg.Lyrics)
	b.WriteString("\n")
	return b.String()
}

func difficultyGuidance(d Difficulty) string {
	switch d {
	case DifficultyBeginner:
		return "single common words, clear vowels and basic consonant sounds"
	case DifficultyIntermediate:
		return "short phrases, stress patterns, diphthongs and linking between words"
	case DifficultyAdvanced:
		return "connected speech, reductions, rare clusters and intonation within phrases"
	}
	return "general pronunciation"
}

type promptVocabulary struct {
	item   VocabularyItem
	inSong bool
}

// splitVocabulary separates struggling words from the rest; within each group
// words found in the lyrics come first, then lower mastery first.
func splitVocabulary(items []VocabularyItem, lyrics string) ([]promptVocabulary, []promptVocabulary) {
	lyricWords := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(lyrics), isWordSeparator) {
		lyricWords[w] = true
	}

	var struggling, others []promptVocabulary
	for _, item := range items {
		v := promptVocabulary{
			item:   item,
			inSong: containsAllWords(lyricWords, item.Word),
		}
		if item.MasteryScore < StrugglingMastery {
			struggling = append(struggling, v)
		} else {
			others = append(others, v)
		}
	}
	for _, group := range [][]promptVocabulary{struggling, others} {
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].inSong != group[j].inSong {
				return group[i].inSong
			}
			return group[i].item.MasteryScore < group[j].item.MasteryScore
		})
	}
	return struggling, others
}

func writeVocabulary(b *strings.Builder, title string, items []promptVocabulary) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title + " (id | word | translation | mastery | in song):\n")
	for _, v := range items {
		inSong := "no"
		if v.inSong {
			inSong = "yes"
		}
		fmt.Fprintf(b, "- %s | %s | %s | %d | %s\n", v.item.RecordID, v.item.Word, v.item.Translation, v.item.MasteryScore, inSong)
	}
	b.WriteString("\n")
}

func containsAllWords(set map[string]bool, phrase string) bool {
	words := strings.FieldsFunc(strings.ToLower(phrase), isWordSeparator)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !set[w] {
			return false
		}
	}
	return true
}

func isWordSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}

type generatedPayload struct {
	Exercises []generatedItem `json:"exercises"`
}

type generatedItem struct {
	WordOrPhrase          string  `json:"wordOrPhrase"`
	PhoneticTranscription string  `json:"phoneticTranscription"`
	ContextSentence       string  `json:"contextSentence"`
	VocabularyRecordID    *string `json:"vocabularyRecordId"`
}

func validateExercises(raw json.RawMessage, vocabulary []VocabularyItem) ([]GeneratedExercise, error) {
	var payload generatedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("json.Unmarshal > %v: %w", err, provider.ErrSchemaViolation)
	}

	knownIDs := make(map[string]bool, len(vocabulary))
	for _, item := range vocabulary {
		if item.RecordID != "" {
			knownIDs[item.RecordID] = true
		}
	}

	var valid []GeneratedExercise
	for i, item := range payload.Exercises {
		exercise := GeneratedExercise{
			WordOrPhrase:          strings.TrimSpace(item.WordOrPhrase),
			PhoneticTranscription: strings.TrimSpace(item.PhoneticTranscription),
			ContextSentence:       strings.TrimSpace(item.ContextSentence),
		}
		if reason := rejectReason(exercise); reason != "" {
			slog.Default().Warn("rejected generated exercise",
				"index", i,
				"wordOrPhrase", exercise.WordOrPhrase,
				"reason", reason)
			continue
		}
		if item.VocabularyRecordID != nil {
			id := strings.TrimSpace(*item.VocabularyRecordID)
			if knownIDs[id] {
				exercise.VocabularyRecordID = id
			} else if id != "" {
				slog.Default().Warn("dropped unknown vocabulary record id",
					"index", i,
					"vocabularyRecordId", id)
			}
		}
		valid = append(valid, exercise)
	}

	if len(valid) > MaxExercises {
		valid = valid[:MaxExercises]
	}
	if len(valid) < MinExercises {
		return nil, fmt.Errorf("%d of %d generated exercises are valid, need at least %d: %w",
			len(valid), len(payload.Exercises), MinExercises, provider.ErrSchemaViolation)
	}
	return valid, nil
}

func rejectReason(exercise GeneratedExercise) string {
	switch {
	case exercise.WordOrPhrase == "":
		return "empty wordOrPhrase"
	case tokenCount(exercise.WordOrPhrase) > MaxWordTokens:
		return fmt.Sprintf("wordOrPhrase has more than %d tokens", MaxWordTokens)
	case utf8.RuneCountInString(exercise.WordOrPhrase) > MaxFieldLength:
		return fmt.Sprintf("wordOrPhrase is longer than %d characters", MaxFieldLength)
	case exercise.PhoneticTranscription == "":
		return "empty phoneticTranscription"
	case utf8.RuneCountInString(exercise.PhoneticTranscription) > MaxFieldLength:
		return fmt.Sprintf("phoneticTranscription is longer than %d characters", MaxFieldLength)
	case exercise.ContextSentence == "":
		return "empty contextSentence"
	case strings.EqualFold(exercise.ContextSentence, exercise.WordOrPhrase):
		return "contextSentence repeats wordOrPhrase"
	}
	return ""
}
