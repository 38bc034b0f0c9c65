package ui

import (
	"strings"

	"fyne.io/fyne/v2/lang"
	"golang.org/x/text/language"

	"github.com/ytget/silk-installer/internal/config"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
	systemLocale    func() string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyGetStarted        = "get_started"
	KeyDownload          = "download"
	KeyExtract           = "extract"
	KeyOpenFolder        = "open_folder"
	KeyDownloading       = "downloading"
	KeyDownloadedTo      = "downloaded_to"
	KeyExtracting        = "extracting"
	KeyExtractedTo       = "extracted_to"
	KeyDownloadFailed    = "download_failed"
	KeyExtractionFailed  = "extraction_failed"
	KeyCongratulations   = "congratulations"
	KeySuccessMessage    = "success_message"
	KeyErrorOpeningDir   = "error_opening_dir"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyArchiveURL        = "archive_url"
	KeyArchiveName       = "archive_name"
	KeyDownloadDirectory = "download_directory"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.Russian,
	language.Portuguese,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
		systemLocale:    func() string { return lang.SystemLocale().String() },
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the closest
// supported match for the OS locale.
func (l *Localization) SetLanguage(code string) {
	if code == config.DefaultLanguage {
		code = MatchLanguage(l.systemLocale())
	}

	if _, exists := l.texts[code]; exists {
		l.currentLanguage = code
	}
}

// MatchLanguage maps a locale such as "pt_BR" or "ru-RU" onto one of the
// supported language codes, falling back to English.
func MatchLanguage(locale string) string {
	locale = strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
	if locale == "" {
		return "en"
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}

	_, index, confidence := languageMatcher.Match(tag)
	if confidence == language.No {
		return "en"
	}

	base, _ := supportedLanguages[index].Base()
	return base.String()
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Tan Silking The Song",
		KeyGetStarted:        "Get Started",
		KeyDownload:          "Download BepinEx5 With Config Manager",
		KeyExtract:           "Select Directory Where Silksong Is Downloaded",
		KeyOpenFolder:        "Open Game Folder",
		KeyDownloading:       "Downloading",
		KeyDownloadedTo:      "Saved to",
		KeyExtracting:        "Extracting",
		KeyExtractedTo:       "Installed into",
		KeyDownloadFailed:    "Download failed",
		KeyExtractionFailed:  "Extraction failed",
		KeyCongratulations:   "Congratulations",
		KeySuccessMessage:    "Congratulations! You just downloaded BepInEx5 easily with the help of Tan.",
		KeyErrorOpeningDir:   "Error opening folder",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyArchiveURL:        "Archive URL",
		KeyArchiveName:       "Archive File Name",
		KeyDownloadDirectory: "Download Directory",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Tan Silking The Song",
		KeyGetStarted:        "Начать",
		KeyDownload:          "Скачать BepInEx5 с Config Manager",
		KeyExtract:           "Выберите папку, куда установлен Silksong",
		KeyOpenFolder:        "Открыть папку игры",
		KeyDownloading:       "Загрузка",
		KeyDownloadedTo:      "Сохранено в",
		KeyExtracting:        "Распаковка",
		KeyExtractedTo:       "Установлено в",
		KeyDownloadFailed:    "Ошибка загрузки",
		KeyExtractionFailed:  "Ошибка распаковки",
		KeyCongratulations:   "Поздравляем",
		KeySuccessMessage:    "Поздравляем! Вы легко установили BepInEx5 с помощью Tan.",
		KeyErrorOpeningDir:   "Ошибка открытия папки",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyArchiveURL:        "URL архива",
		KeyArchiveName:       "Имя файла архива",
		KeyDownloadDirectory: "Папка загрузки",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Tan Silking The Song",
		KeyGetStarted:        "Começar",
		KeyDownload:          "Baixar BepInEx5 com Config Manager",
		KeyExtract:           "Selecione a pasta onde o Silksong está instalado",
		KeyOpenFolder:        "Abrir pasta do jogo",
		KeyDownloading:       "Baixando",
		KeyDownloadedTo:      "Salvo em",
		KeyExtracting:        "Extraindo",
		KeyExtractedTo:       "Instalado em",
		KeyDownloadFailed:    "Falha no download",
		KeyExtractionFailed:  "Falha na extração",
		KeyCongratulations:   "Parabéns",
		KeySuccessMessage:    "Parabéns! Você instalou o BepInEx5 facilmente com a ajuda do Tan.",
		KeyErrorOpeningDir:   "Erro ao abrir a pasta",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyArchiveURL:        "URL do arquivo",
		KeyArchiveName:       "Nome do arquivo",
		KeyDownloadDirectory: "Diretório de Download",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Procurar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
	}
}
