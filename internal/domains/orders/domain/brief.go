package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// WhatsAppURLPrefix is the messaging-app deep-link base used for contact links.
const WhatsAppURLPrefix = "https://wa.me/"

// briefDefaults supplies a documented fallback for every template token, so a
// brief never renders with an unsubstituted placeholder.
var briefDefaults = Details{
	"cores":                "padrão",
	"estilo":               "moderno",
	"publicoAlvo":          "geral",
	"redesSociais":         "nenhum",
	"emailIntegracao":      "nenhum",
	"mensagemWhatsApp":     "Fale comigo!",
	"breveDescricao":       "nenhum",
	"beneficios":           "nenhum",
	"ilustracao":           "nenhum",
	"ilustracaoComplexa":   false,
	"animacoesAvancadas":   false,
	"textoSEO":             "nenhum",
	"listaServicos":        "nenhum",
	"preferenciasAnimacao": "padrão",
	"depoimentos":          "Ajustar com cliente",
}

const briefEssential = `Crie uma landing page de 1 página (Home) com:
- Estrutura: Apresentação, CTA, formulário simples.
- Conteúdo: Nome: {nome}, Objetivo: {objetivo}, CTA: {callToAction}.
- Design: Cores: {cores}, Estilo: {estilo}, Público-alvo: {publicoAlvo}.
- Integrações: Redes sociais: {redesSociais}.
- Prazo: 5 dias úteis.`

const briefProfessional = `Crie uma landing page de 3 páginas (Home, Sobre, Contato) com:
- Home: Apresentação, CTA, formulário conectado a {emailIntegracao}.
- Sobre: Descrição: {breveDescricao}, Benefícios: {beneficios}.
- Contato: Formulário, link WhatsApp com mensagem: {mensagemWhatsApp}.
- Conteúdo: Nome: {nome}, Objetivo: {objetivo}, CTA: {callToAction}.
- Design: Cores: {cores}, Estilo: {estilo}, Público-alvo: {publicoAlvo}.
- Integrações: Redes sociais: {redesSociais}.
- Prazo: 7 dias úteis.`

const briefPremium = `Crie uma landing page de 5 páginas (Home, Sobre, Portfólio/Serviços, Depoimentos, Contato) com:
- Home: Apresentação, CTA, formulário conectado a {emailIntegracao}.
- Sobre: Descrição: {breveDescricao}, Benefícios: {beneficios}.
- Portfólio/Serviços: Galeria com {listaServicos}, ilustrações: {ilustracao}, complexa: {ilustracaoComplexa}.
- Depoimentos: {depoimentos}.
- Contato: Formulário, link WhatsApp com mensagem: {mensagemWhatsApp}, SEO com: {textoSEO}.
- Conteúdo: Nome: {nome}, Objetivo: {objetivo}, CTA: {callToAction}.
- Design: Cores: {cores}, Estilo: {estilo}, Público-alvo: {publicoAlvo}.
- Animações: {preferenciasAnimacao}, avançadas: {animacoesAvancadas}.
- Integrações: Redes sociais: {redesSociais}.
- Prazo: 10 dias úteis.`

// Brief renders the plan-specific design brief, substituting every {token}
// with the client's detail value or its documented default. An unknown plan
// renders the Essential template. Substitution is literal and replaces the
// first occurrence of each token.
func Brief(details Details, plan Plan) string {
	template := briefEssential
	switch plan {
	case PlanProfessional:
		template = briefProfessional
	case PlanPremium:
		template = briefPremium
	}
	return strings.TrimSpace(substitute(template, mergeDefaults(details)))
}

func mergeDefaults(details Details) Details {
	merged := make(Details, len(briefDefaults)+len(details))
	for k, v := range briefDefaults {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return merged
}

// substitute replaces "{key}" with the stringified value for each key in the
// mapping. Keys are visited in sorted order so output is deterministic even
// when a value itself contains a brace token.
func substitute(template string, values Details) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := template
	for _, k := range keys {
		out = strings.Replace(out, "{"+k+"}", stringify(values[k]), 1)
	}
	return out
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		// JSON numbers decode as float64; render integers without decimals.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ContactMessage builds the one-sentence order confirmation and
// percent-encodes it for embedding in a URL query parameter.
func ContactMessage(details Details, plan Plan, price int, deliveryDate string) string {
	style := details.String(DetailStyle)
	if style == "" {
		style = "moderno"
	}
	colors := details.String(DetailColors)
	if colors == "" {
		colors = "padrão"
	}
	message := fmt.Sprintf(
		"Olá, %s! Pedido de landing page (%s) recebido! Preço: R$%d. Detalhes: Layout %s, cores %s, objetivo %s. Prazo: %s. Confirme ou ajuste!",
		details.String(DetailName), plan, price, style, colors, details.String(DetailObjective), deliveryDate,
	)
	return url.QueryEscape(message)
}

// ContactLink assembles the pre-filled messaging link for the given phone
// number and an already-encoded message.
func ContactLink(phoneNumber, encodedMessage string) string {
	return WhatsAppURLPrefix + phoneNumber + "?text=" + encodedMessage
}
