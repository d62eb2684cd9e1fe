package seeder

type bankQuestion struct {
	Text    string
	Options [4]string
	Correct string
	Points  int
}

type questionBank struct {
	Title           string
	Description     string
	DurationMinutes int
	Questions       []bankQuestion
}

var questionBanks = []questionBank{
	{
		Title:           "QCM Python",
		Description:     "Bases du langage Python: types, structures de données et fonctions.",
		DurationMinutes: 20,
		Questions: []bankQuestion{
			{"Quel est le type de l'expression 3 / 2 en Python 3 ?", [4]string{"int", "float", "decimal", "str"}, "B", 1},
			{"Quelle structure est immuable ?", [4]string{"list", "dict", "tuple", "set"}, "C", 1},
			{"Que renvoie len({'a': 1, 'b': 2}) ?", [4]string{"1", "2", "4", "Erreur"}, "B", 1},
			{"Quel mot-clé définit une fonction ?", [4]string{"func", "function", "lambda", "def"}, "D", 1},
			{"Que produit [x * 2 for x in range(3)] ?", [4]string{"[0, 2, 4]", "[2, 4, 6]", "[0, 1, 2]", "[1, 2, 3]"}, "A", 2},
			{"Quelle exception est levée par int('abc') ?", [4]string{"TypeError", "ValueError", "KeyError", "IndexError"}, "B", 2},
			{"Quel module standard manipule les expressions régulières ?", [4]string{"regex", "re", "string", "pattern"}, "B", 1},
			{"Que fait l'instruction 'with open(f) as h:' à la sortie du bloc ?", [4]string{"Rien", "Supprime le fichier", "Ferme le fichier", "Vide le fichier"}, "C", 2},
		},
	},
	{
		Title:           "QCM JavaScript",
		Description:     "JavaScript moderne: portée, promesses et manipulation de tableaux.",
		DurationMinutes: 20,
		Questions: []bankQuestion{
			{"Quel mot-clé déclare une variable à portée de bloc non réassignable ?", [4]string{"var", "let", "const", "static"}, "C", 1},
			{"Que vaut typeof null ?", [4]string{"'null'", "'undefined'", "'object'", "'number'"}, "C", 1},
			{"Quelle méthode crée un nouveau tableau transformé ?", [4]string{"forEach", "map", "push", "splice"}, "B", 1},
			{"Que vaut 0.1 + 0.2 === 0.3 ?", [4]string{"true", "false", "undefined", "NaN"}, "B", 2},
			{"Quel mot-clé suspend une fonction async jusqu'à la résolution d'une promesse ?", [4]string{"yield", "await", "defer", "then"}, "B", 1},
			{"Que renvoie [1, 2, 3].filter(n => n > 1) ?", [4]string{"[1]", "[2, 3]", "[1, 2]", "true"}, "B", 1},
			{"Quel opérateur compare sans conversion de type ?", [4]string{"==", "=", "===", "!="}, "C", 1},
			{"Dans React, quel hook gère un état local ?", [4]string{"useEffect", "useState", "useMemo", "useRef"}, "B", 2},
		},
	},
	{
		Title:           "QCM SQL et bases de données",
		Description:     "Requêtes SQL, jointures et notions de modélisation relationnelle.",
		DurationMinutes: 25,
		Questions: []bankQuestion{
			{"Quelle clause filtre les groupes après un GROUP BY ?", [4]string{"WHERE", "HAVING", "ORDER BY", "LIMIT"}, "B", 2},
			{"Quelle jointure conserve toutes les lignes de la table de gauche ?", [4]string{"INNER JOIN", "RIGHT JOIN", "LEFT JOIN", "CROSS JOIN"}, "C", 1},
			{"Quelle commande supprime une table et sa structure ?", [4]string{"DELETE", "TRUNCATE", "DROP TABLE", "REMOVE"}, "C", 1},
			{"Que garantit une contrainte UNIQUE ?", [4]string{"Valeur non nulle", "Absence de doublons", "Clé étrangère", "Index partiel"}, "B", 1},
			{"Quelle fonction compte les lignes ?", [4]string{"SUM", "COUNT", "MAX", "AVG"}, "B", 1},
			{"Que signifie le A de ACID ?", [4]string{"Availability", "Atomicity", "Accuracy", "Authorization"}, "B", 2},
			{"Quel mot-clé élimine les doublons d'un résultat ?", [4]string{"UNIQUE", "DISTINCT", "ONLY", "SINGLE"}, "B", 1},
			{"Une clé étrangère référence généralement :", [4]string{"Un index", "Une vue", "Une clé primaire", "Une séquence"}, "C", 1},
		},
	},
	{
		Title:           "QCM Analyse de données",
		Description:     "Statistiques descriptives, Excel et outils d'analyse.",
		DurationMinutes: 25,
		Questions: []bankQuestion{
			{"Quelle mesure est la moins sensible aux valeurs extrêmes ?", [4]string{"Moyenne", "Médiane", "Étendue", "Variance"}, "B", 1},
			{"Dans Excel, quelle fonction recherche une valeur dans une colonne ?", [4]string{"SOMME", "RECHERCHEV", "NB.SI", "CONCAT"}, "B", 1},
			{"Un coefficient de corrélation de -0,9 indique :", [4]string{"Aucune relation", "Une relation positive forte", "Une relation négative forte", "Une erreur"}, "C", 2},
			{"Quel graphique montre la distribution d'une variable continue ?", [4]string{"Camembert", "Histogramme", "Radar", "Jauge"}, "B", 1},
			{"Dans pandas, quelle méthode agrège par catégorie ?", [4]string{"merge", "groupby", "pivot_table", "apply"}, "B", 2},
			{"Que représente l'écart-type ?", [4]string{"La valeur centrale", "La dispersion autour de la moyenne", "Le maximum", "Le nombre d'observations"}, "B", 1},
			{"Un tableau croisé dynamique sert à :", [4]string{"Saisir des données", "Résumer et regrouper des données", "Créer des macros", "Protéger une feuille"}, "B", 1},
		},
	},
	{
		Title:           "Test d'aptitude générale",
		Description:     "Raisonnement logique, numérique et verbal.",
		DurationMinutes: 15,
		Questions: []bankQuestion{
			{"Quelle est la suite logique : 2, 4, 8, 16, ... ?", [4]string{"18", "24", "32", "20"}, "C", 1},
			{"Si 5 ouvriers construisent un mur en 10 jours, combien de jours pour 10 ouvriers ?", [4]string{"20", "5", "10", "15"}, "B", 2},
			{"Quel mot est l'intrus : pomme, orange, carotte, banane ?", [4]string{"pomme", "orange", "carotte", "banane"}, "C", 1},
			{"Un produit à 200 MAD est soldé de 25 %. Quel est son nouveau prix ?", [4]string{"150 MAD", "175 MAD", "125 MAD", "160 MAD"}, "A", 1},
			{"Tous les A sont B, certains B sont C. Peut-on conclure que certains A sont C ?", [4]string{"Oui", "Non", "Seulement si C est vide", "Toujours"}, "B", 2},
			{"Quel est le synonyme de « rigoureux » ?", [4]string{"Négligent", "Méticuleux", "Rapide", "Créatif"}, "B", 1},
		},
	},
}
