package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load()
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyDiffPath, "pr.diff")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLLMProvider, "googleai")
	viper.SetDefault(KeyLLMModel, "gemini-3-pro-preview")
	viper.SetDefault(KeyOllamaURL, "http://localhost:11434")
	viper.SetDefault(KeyLLMTimeout, 180)
	viper.SetDefault(KeyLeanKeywords, "def,abbrev,example,theorem,opaque,lemma,instance")
	viper.SetDefault(KeyMaxDiffTokens, 1_500_000)
	viper.SetDefault(KeyMapWorkers, 4)
	viper.SetDefault(KeySorryIssueLabel, "proof wanted")
}

func GitHubToken() string      { return viper.GetString(KeyGitHubToken) }
func GitHubRepository() string { return viper.GetString(KeyGitHubRepository) }
func PRNumber() int            { return viper.GetInt(KeyPRNumber) }
func EventPath() string        { return viper.GetString(KeyEventPath) }
func DiffPath() string         { return viper.GetString(KeyDiffPath) }
func LogLevel() string         { return viper.GetString(KeyLogLevel) }
func LLMProvider() string      { return viper.GetString(KeyLLMProvider) }
func LLMModel() string         { return viper.GetString(KeyLLMModel) }
func GeminiAPIKey() string     { return viper.GetString(KeyGeminiAPIKey) }
func OllamaURL() string        { return viper.GetString(KeyOllamaURL) }
func LLMTimeoutSeconds() int   { return viper.GetInt(KeyLLMTimeout) }
func StyleGuidePath() string   { return viper.GetString(KeyStyleGuidePath) }
func PromptDir() string        { return viper.GetString(KeyPromptDir) }
func MaxDiffTokens() int       { return viper.GetInt(KeyMaxDiffTokens) }
func MapWorkers() int          { return viper.GetInt(KeyMapWorkers) }
func SorryIssueLabel() string  { return viper.GetString(KeySorryIssueLabel) }

// LeanKeywords returns the configured declaration trigger keywords,
// trimmed and with empty entries dropped.
func LeanKeywords() []string {
	raw := strings.Split(viper.GetString(KeyLeanKeywords), ",")
	keywords := make([]string, 0, len(raw))
	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
