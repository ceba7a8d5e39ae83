package service

import "lexfacts-backend/models"

// promptGeneral is the default fact-extraction instruction template
const promptGeneral = `
Tu es un assistant juridique expert en contentieux. Analyse le texte suivant. Ta mission est d'extraire TOUS les faits et événements pertinents.
Réponds **uniquement** en format JSON, dans un tableau ` + "`" + `{"faits": [...]}` + "`" + `. Chaque fait doit suivre cette structure exacte :

{
  "date_fait": "YYYY-MM-DD",
  "description": "Description concise de l'événement.",
  "acteurs": "Personne A, Société B",
  "type_fait": "Email / Réunion / Courrier / Notification"
}

Si une date est incertaine, utilise "null". N'invente rien. Extrais seulement.
`

// promptMarchesPublics is the specialized template for public procurement
// disputes
const promptMarchesPublics = `
Tu es un assistant juridique **spécialiste des marchés publics**. Analyse le texte suivant. Ta mission est d'extraire les faits clés spécifiques à ce contentieux.
Réponds **uniquement** en format JSON, dans un tableau ` + "`" + `{"faits": [...]}` + "`" + `. La structure doit rester la même :

{
  "date_fait": "YYYY-MM-DD",
  "description": "Description spécifique (ex: Rejet de l'offre de [Société] pour motif [X], Publication de l'AAPC, Notification de la décision d'attribution)",
  "acteurs": "Pouvoir adjudicateur, Société candidate, Concurrent",
  "type_fait": "AAPC / Soumission / Négociation / Rejet / Attribution / Référé"
}

Concentre-toi sur les dates clés, les motifs de rejet, les parties prenantes et les étapes de la procédure.
`

// promptTemplates maps dossier categories to their specialized templates.
// New categories only need an entry here.
var promptTemplates = map[models.DossierCategory]string{
	models.CategoryMarchePublic: promptMarchesPublics,
}

// PromptForCategory returns the fact-extraction instruction template for a
// dossier category. Unknown or unset categories fall back to the general
// template.
func PromptForCategory(category models.DossierCategory) string {
	if prompt, ok := promptTemplates[category]; ok {
		return prompt
	}
	return promptGeneral
}
