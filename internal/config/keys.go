package config

const (
	KeyGitHubToken      = "github_token"
	KeyGitHubRepository = "github_repository"
	KeyPRNumber         = "pr_number"
	KeyEventPath        = "github_event_path"
	KeyDiffPath         = "diff_path"
	KeyLogLevel         = "log_level"
	KeyLLMProvider      = "llm_provider"
	KeyLLMModel         = "llm_model"
	KeyGeminiAPIKey     = "gemini_api_key"
	KeyOllamaURL        = "ollama_url"
	KeyLLMTimeout       = "llm_timeout_seconds"
	KeyLeanKeywords     = "lean_keywords"
	KeyStyleGuidePath   = "style_guide_path"
	KeyPromptDir        = "prompt_dir"
	KeyMaxDiffTokens    = "max_diff_tokens"
	KeyMapWorkers       = "map_workers"
	KeySorryIssueLabel  = "sorry_issue_label"
)
