package cloudflare

// Модели ответа Cloudflare Images API v1.
// https://api.cloudflare.com/client/v4/accounts/{account_id}/images/v1

// imageResult — объект result в успешном ответе на загрузку.
type imageResult struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Variants []string `json:"variants"`
}

// apiMessage — элемент массивов errors/messages в ответе API.
type apiMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// uploadResponse — полный конверт ответа на загрузку одного изображения.
type uploadResponse struct {
	Success  bool         `json:"success"`
	Result   *imageResult `json:"result"`
	Errors   []apiMessage `json:"errors"`
	Messages []apiMessage `json:"messages"`
}
