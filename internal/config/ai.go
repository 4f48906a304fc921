package config

type AI string

const (
	AIOpenAI AI = "openai"
	AIGemini AI = "gemini"
)

type Model string

const (
	ModelGPTV4o     Model = "gpt-4o"
	ModelGPTV4oMini Model = "gpt-4o-mini"

	ModelGeminiV25Pro       Model = "gemini-2.5-pro"
	ModelGeminiV25Flash     Model = "gemini-2.5-flash"
	ModelGeminiV25FlashLite Model = "gemini-2.5-flash-lite"
)

const DefaultOpenAIBaseURL = "https://api.openai.com/v1/"

func SupportedAIs() []AI {
	return []AI{
		AIOpenAI,
		AIGemini,
	}
}

func ModelsForAI(ai AI) []Model {
	switch ai {
	case AIOpenAI:
		return []Model{
			ModelGPTV4o,
			ModelGPTV4oMini,
		}
	case AIGemini:
		return []Model{
			ModelGeminiV25Flash,
			ModelGeminiV25Pro,
			ModelGeminiV25FlashLite,
		}
	default:
		return []Model{}
	}
}

func DefaultModelForAI(ai AI) Model {
	models := ModelsForAI(ai)
	if len(models) == 0 {
		return ""
	}
	return models[0]
}
